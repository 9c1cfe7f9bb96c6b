package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/shoots/internal/board"
	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/KirkDiggler/shoots/internal/repositories/scoreboard"
)

// session owns the mutable state of one game. The mutex is held only for
// short mutations and snapshots, never across a pause, so renderers can
// observe a round while it plays.
type session struct {
	svc *service

	id        string
	channelID string
	createdAt time.Time

	// immutable after creation
	ladders       []*models.Ladder
	ladderByStart map[int]*models.Ladder

	mu          sync.Mutex
	messageID   string
	players     []*models.Player
	diceFace    int
	isRolling   bool
	roundActive bool
	automatic   *automaticPlayer
	updatedAt   time.Time
}

func newSession(svc *service, id, channelID string, ladders []*models.Ladder) *session {
	now := svc.clock.Now()

	s := &session{
		svc:           svc,
		id:            id,
		channelID:     channelID,
		createdAt:     now,
		updatedAt:     now,
		ladders:       ladders,
		ladderByStart: make(map[int]*models.Ladder, len(ladders)),
	}

	for _, ladder := range ladders {
		if _, exists := s.ladderByStart[ladder.Start]; !exists {
			s.ladderByStart[ladder.Start] = ladder
		}
	}

	s.players = append(s.players, newPlayer(1, board.FirstPlayerColor))

	return s
}

func newPlayer(id int, color string) *models.Player {
	return &models.Player{
		ID:          id,
		Name:        fmt.Sprintf("Player %d", id),
		Position:    board.StartPosition,
		Color:       color,
		MoveHistory: []*models.Move{},
	}
}

// playRound lets every unfinished player roll once, in roster order. It
// returns false without touching any state when a round is already active.
func (s *session) playRound(ctx context.Context) bool {
	s.mu.Lock()
	if s.roundActive {
		s.mu.Unlock()
		return false
	}
	s.roundActive = true
	// players only join when a round settles, so the roster is fixed here
	rosterSize := len(s.players)
	s.mu.Unlock()

	for i := 0; i < rosterSize; i++ {
		s.takeTurn(ctx, i)
	}

	s.settleRound(ctx)
	return true
}

// takeTurn rolls for one player, steps it forward and applies a ladder
func (s *session) takeTurn(ctx context.Context, index int) {
	s.mu.Lock()
	player := s.players[index]
	if player.Finished {
		s.mu.Unlock()
		return
	}
	from := player.Position
	s.mu.Unlock()

	roll := s.svc.diceRoller.Roll(s.svc.diceSides)

	s.apply(ctx, models.EventRollStarted, player.ID, func() {
		s.isRolling = true
	})
	s.pause(ctx, s.svc.revealDelay)

	s.apply(ctx, models.EventDiceRevealed, player.ID, func() {
		s.diceFace = roll
	})
	s.pause(ctx, s.svc.settleDelay)

	s.apply(ctx, models.EventRollSettled, player.ID, func() {
		s.isRolling = false
	})

	// Ladders are looked up on the unclamped target, so a roll past the
	// finish never triggers a ladder.
	expected := from + roll
	finish := s.svc.boardConfig.Finish()

	for step := 0; step < roll; step++ {
		s.pause(ctx, s.svc.stepDelay)
		s.apply(ctx, models.EventPlayerStepped, player.ID, func() {
			player.Position = min(player.Position+1, finish)
			player.MovedSteps = player.DiceRolls + 1
		})
	}

	s.apply(ctx, models.EventMoveRecorded, player.ID, func() {
		player.DiceRolls++
		player.MoveHistory = append(player.MoveHistory, &models.Move{
			From:       from,
			To:         player.Position,
			Dice:       roll,
			MoveNumber: player.DiceRolls,
		})
	})

	ladder, ok := s.ladderByStart[expected]
	if !ok {
		return
	}

	// Jumps resolve once per roll; landing on another ladder's start does not chain.
	s.apply(ctx, models.EventLadderTaken, player.ID, func() {
		player.MoveHistory = append(player.MoveHistory, &models.Move{
			From:       player.Position,
			To:         ladder.End,
			MoveType:   models.MoveTypeLadder,
			MoveNumber: player.DiceRolls,
		})
		player.Position = ladder.End
	})
}

// settleRound marks players on the last cell as finished, spawns one
// replacement per finisher and releases the round guard
func (s *session) settleRound(ctx context.Context) {
	finish := s.svc.boardConfig.Finish()

	var events []*models.GameEvent
	var finished []*models.Player

	s.mu.Lock()
	rosterSize := len(s.players)
	for i := 0; i < rosterSize; i++ {
		player := s.players[i]
		if player.Position != finish || player.Finished {
			continue
		}

		player.Finished = true
		finished = append(finished, player.Clone())
		events = append(events, &models.GameEvent{Type: models.EventPlayerFinished, PlayerID: player.ID})

		if spawned := s.spawnPlayerLocked(); spawned != nil {
			events = append(events, &models.GameEvent{Type: models.EventPlayerSpawned, PlayerID: spawned.ID})
		}
	}
	if len(events) > 0 {
		s.updatedAt = s.svc.clock.Now()
	}
	var snapshot *models.Game
	if len(events) > 0 && s.svc.hasListeners() {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if snapshot != nil {
		for _, event := range events {
			event.GameID = s.id
			event.Game = snapshot
			s.svc.publish(ctx, event)
		}
	}

	for _, player := range finished {
		s.recordResult(ctx, player)
	}

	s.apply(ctx, models.EventRoundSettled, 0, func() {
		s.roundActive = false
	})
}

// spawnPlayerLocked adds a player on the start cell unless someone is
// already standing there. Callers hold s.mu.
func (s *session) spawnPlayerLocked() *models.Player {
	for _, player := range s.players {
		if player.Position == board.StartPosition {
			return nil
		}
	}

	player := newPlayer(len(s.players)+1, board.NewColor(s.svc.diceRoller))
	s.players = append(s.players, player)

	log.Printf("Game %s: %s joined the board", s.id, player.Name)
	return player
}

// recordResult stores a finisher on the scoreboard. Failures are logged;
// the game carries on without the entry.
func (s *session) recordResult(ctx context.Context, player *models.Player) {
	result := &models.Result{
		ID:         s.svc.uuidGenerator.NewUUID(),
		GameID:     s.id,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Color:      player.Color,
		DiceRolls:  player.DiceRolls,
		FinishedAt: s.svc.clock.Now(),
	}

	err := s.svc.scoreboardRepo.RecordResult(context.WithoutCancel(ctx), &scoreboard.RecordResultInput{
		Result: result,
	})
	if err != nil {
		log.Printf("Game %s: failed to record result for %s: %v", s.id, player.Name, err)
		return
	}

	log.Printf("Game %s: %s finished in %d rolls", s.id, player.Name, player.DiceRolls)
}

// apply mutates the session under its lock and publishes the change
func (s *session) apply(ctx context.Context, eventType models.EventType, playerID int, mutate func()) {
	s.mu.Lock()
	mutate()
	s.updatedAt = s.svc.clock.Now()
	var snapshot *models.Game
	if s.svc.hasListeners() {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if snapshot == nil {
		return
	}

	s.svc.publish(ctx, &models.GameEvent{
		Type:     eventType,
		GameID:   s.id,
		PlayerID: playerID,
		Game:     snapshot,
	})
}

// pause waits between animation frames. A cancelled context skips the
// wait but the round still commits every mutation.
func (s *session) pause(ctx context.Context, d time.Duration) {
	if ctx.Err() != nil {
		return
	}
	_ = s.svc.clock.Sleep(ctx, d)
}

func (s *session) settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.roundActive
}

func (s *session) setMessageID(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID = messageID
	s.updatedAt = s.svc.clock.Now()
}

func (s *session) snapshot() *models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *session) snapshotLocked() *models.Game {
	players := make([]*models.Player, len(s.players))
	for i, player := range s.players {
		players[i] = player.Clone()
	}

	ladders := make([]*models.Ladder, len(s.ladders))
	for i, ladder := range s.ladders {
		l := *ladder
		ladders[i] = &l
	}

	return &models.Game{
		ID:            s.id,
		ChannelID:     s.channelID,
		MessageID:     s.messageID,
		BoardSize:     s.svc.boardConfig.Size,
		RowLength:     s.svc.boardConfig.RowLength,
		Players:       players,
		Ladders:       ladders,
		DiceFace:      s.diceFace,
		IsRolling:     s.isRolling,
		RoundActive:   s.roundActive,
		AutomaticMode: s.automatic != nil,
		CreatedAt:     s.createdAt,
		UpdatedAt:     s.updatedAt,
	}
}
