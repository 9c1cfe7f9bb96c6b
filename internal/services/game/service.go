package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/shoots/internal/board"
	"github.com/KirkDiggler/shoots/internal/common/clock"
	"github.com/KirkDiggler/shoots/internal/common/uuid"
	"github.com/KirkDiggler/shoots/internal/dice"
	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/KirkDiggler/shoots/internal/repositories/scoreboard"
)

// service implements the Service interface
type service struct {
	boardConfig       board.Config
	diceSides         int
	revealDelay       time.Duration
	settleDelay       time.Duration
	stepDelay         time.Duration
	automaticInterval time.Duration

	scoreboardRepo scoreboard.Repository
	diceRoller     dice.Roller
	clock          clock.Clock
	uuidGenerator  uuid.UUID

	mu       sync.RWMutex
	games    map[string]*session
	channels map[string]string

	listenersMu sync.RWMutex
	listeners   []Listener
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ScoreboardRepo == nil {
		return nil, ErrNilScoreboardRepo
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	boardConfig := board.Config{
		Size:      withDefault(cfg.BoardSize, board.DefaultSize),
		RowLength: withDefault(cfg.RowLength, board.DefaultRowLength),
	}
	if err := boardConfig.Validate(); err != nil {
		return nil, err
	}

	return &service{
		boardConfig:       boardConfig,
		diceSides:         withDefault(cfg.DiceSides, DefaultDiceSides),
		revealDelay:       withDefault(cfg.RevealDelay, DefaultRevealDelay),
		settleDelay:       withDefault(cfg.SettleDelay, DefaultSettleDelay),
		stepDelay:         withDefault(cfg.StepDelay, DefaultStepDelay),
		automaticInterval: withDefault(cfg.AutomaticInterval, DefaultAutomaticInterval),
		scoreboardRepo:    cfg.ScoreboardRepo,
		diceRoller:        cfg.DiceRoller,
		clock:             cfg.Clock,
		uuidGenerator:     cfg.UUIDGenerator,
		games:             make(map[string]*session),
		channels:          make(map[string]string),
	}, nil
}

func withDefault[T int | time.Duration](value, fallback T) T {
	if value <= 0 {
		return fallback
	}
	return value
}

// CreateGame starts a new game
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.ChannelID != "" {
		if _, exists := s.channels[input.ChannelID]; exists {
			return nil, ErrGameAlreadyExists
		}
	}

	gameID := s.uuidGenerator.NewUUID()
	ladders := board.GenerateLadders(s.diceRoller, s.boardConfig)

	game := newSession(s, gameID, input.ChannelID, ladders)
	s.games[gameID] = game
	if input.ChannelID != "" {
		s.channels[input.ChannelID] = gameID
	}

	log.Printf("Created game %s with %d ladders", gameID, len(ladders))

	return &CreateGameOutput{
		Game: game.snapshot(),
	}, nil
}

// GetGame returns a snapshot of a game
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	game, err := s.getSession(input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{
		Game: game.snapshot(),
	}, nil
}

// GetGameByChannel returns a snapshot of the game played in a channel
func (s *service) GetGameByChannel(ctx context.Context, input *GetGameByChannelInput) (*GetGameOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrInvalidInput
	}

	s.mu.RLock()
	gameID, ok := s.channels[input.ChannelID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}

	return s.GetGame(ctx, &GetGameInput{
		GameID: gameID,
	})
}

// RollDice plays one round of a game
func (s *service) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	game, err := s.getSession(input.GameID)
	if err != nil {
		return nil, err
	}

	played := game.playRound(ctx)

	return &RollDiceOutput{
		Played: played,
		Game:   game.snapshot(),
	}, nil
}

// SetAutomaticMode turns automatic mode on or off
func (s *service) SetAutomaticMode(ctx context.Context, input *SetAutomaticModeInput) (*SetAutomaticModeOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	game, err := s.getSession(input.GameID)
	if err != nil {
		return nil, err
	}

	changed := game.setAutomatic(input.Enabled)
	snapshot := game.snapshot()

	if changed {
		log.Printf("Game %s: automatic mode set to %t", input.GameID, input.Enabled)
		s.publish(ctx, &models.GameEvent{
			Type:   models.EventAutomaticModeChanged,
			GameID: input.GameID,
			Game:   snapshot,
		})
	}

	return &SetAutomaticModeOutput{
		AutomaticMode: snapshot.AutomaticMode,
		Changed:       changed,
		Game:          snapshot,
	}, nil
}

// ToggleAutomaticMode flips automatic mode
func (s *service) ToggleAutomaticMode(ctx context.Context, input *ToggleAutomaticModeInput) (*SetAutomaticModeOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	game, err := s.getSession(input.GameID)
	if err != nil {
		return nil, err
	}

	return s.SetAutomaticMode(ctx, &SetAutomaticModeInput{
		GameID:  input.GameID,
		Enabled: !game.snapshot().AutomaticMode,
	})
}

// UpdateGameMessage records the message displaying a game
func (s *service) UpdateGameMessage(ctx context.Context, input *UpdateGameMessageInput) (*UpdateGameMessageOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	game, err := s.getSession(input.GameID)
	if err != nil {
		return nil, err
	}

	game.setMessageID(input.MessageID)

	return &UpdateGameMessageOutput{
		Success: true,
	}, nil
}

// EndGame stops automatic mode and forgets the game. A round in progress
// finishes on its own goroutine.
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	game, ok := s.games[input.GameID]
	if ok {
		delete(s.games, input.GameID)
		if game.channelID != "" {
			delete(s.channels, game.channelID)
		}
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrGameNotFound
	}

	game.setAutomatic(false)

	log.Printf("Ended game %s", input.GameID)

	return &EndGameOutput{
		Game: game.snapshot(),
	}, nil
}

// GetScoreboard returns finished players' results
func (s *service) GetScoreboard(ctx context.Context, input *GetScoreboardInput) (*GetScoreboardOutput, error) {
	if input == nil {
		input = &GetScoreboardInput{}
	}

	if input.GameID != "" {
		output, err := s.scoreboardRepo.GetResultsForGame(ctx, &scoreboard.GetResultsForGameInput{
			GameID: input.GameID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get game results: %w", err)
		}

		return &GetScoreboardOutput{
			Results: output.Results,
		}, nil
	}

	output, err := s.scoreboardRepo.GetTopResults(ctx, &scoreboard.GetTopResultsInput{
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get scoreboard: %w", err)
	}

	return &GetScoreboardOutput{
		Results: output.Results,
	}, nil
}

// AddListener registers a listener for game events
func (s *service) AddListener(listener Listener) {
	if listener == nil {
		log.Printf("Ignoring listener: %v", ErrNilListener)
		return
	}

	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *service) hasListeners() bool {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()
	return len(s.listeners) > 0
}

func (s *service) publish(ctx context.Context, event *models.GameEvent) {
	s.listenersMu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.RUnlock()

	for _, listener := range listeners {
		listener.OnGameEvent(ctx, event)
	}
}

func (s *service) getSession(gameID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}

	return game, nil
}
