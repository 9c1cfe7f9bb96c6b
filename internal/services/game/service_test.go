package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/shoots/internal/board"
	clockMocks "github.com/KirkDiggler/shoots/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/shoots/internal/common/uuid/mocks"
	"github.com/KirkDiggler/shoots/internal/dice"
	diceMocks "github.com/KirkDiggler/shoots/internal/dice/mocks"
	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/KirkDiggler/shoots/internal/repositories/scoreboard"
	scoreboardMocks "github.com/KirkDiggler/shoots/internal/repositories/scoreboard/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockScoreboard *scoreboardMocks.MockRepository
	mockDiceRoller *diceMocks.MockRoller
	mockClock      *clockMocks.MockClock
	mockUUID       *uuidMocks.MockUUID
	svc            *service
	gameService    Service
	ctx            context.Context

	// Test data
	testTime      time.Time
	testGameID    string
	testChannelID string
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockScoreboard = scoreboardMocks.NewMockRepository(s.mockCtrl)
	s.mockDiceRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testGameID = "test-game-id"
	s.testChannelID = "test-channel-id"

	// Set up the clock mock to return our test time
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(&Config{
		ScoreboardRepo: s.mockScoreboard,
		DiceRoller:     s.mockDiceRoller,
		Clock:          s.mockClock,
		UUIDGenerator:  s.mockUUID,
	})
	s.Require().NoError(err)
	s.svc = svc
	s.gameService = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGameServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

// addGame registers a game with hand-picked ladders
func (s *GameServiceTestSuite) addGame(ladders ...*models.Ladder) *session {
	game := newSession(s.svc, s.testGameID, s.testChannelID, ladders)

	s.svc.mu.Lock()
	s.svc.games[s.testGameID] = game
	s.svc.channels[s.testChannelID] = s.testGameID
	s.svc.mu.Unlock()

	return game
}

// place moves players before a test starts
func (s *GameServiceTestSuite) place(game *session, positions ...int) {
	game.mu.Lock()
	defer game.mu.Unlock()

	for i, position := range positions {
		if i >= len(game.players) {
			game.players = append(game.players, newPlayer(i+1, "blue"))
		}
		game.players[i].Position = position
	}
}

func (s *GameServiceTestSuite) expectInstantSleeps() {
	s.mockClock.EXPECT().Sleep(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

// expectRolls queues die results in order
func (s *GameServiceTestSuite) expectRolls(values ...int) {
	calls := make([]any, 0, len(values))
	for _, v := range values {
		calls = append(calls, s.mockDiceRoller.EXPECT().Roll(DefaultDiceSides).Return(v))
	}
	gomock.InOrder(calls...)
}

func (s *GameServiceTestSuite) roll() *RollDiceOutput {
	output, err := s.gameService.RollDice(s.ctx, &RollDiceInput{
		GameID: s.testGameID,
	})
	s.Require().NoError(err)
	return output
}

func (s *GameServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilScoreboardRepo)

	_, err = New(&Config{ScoreboardRepo: s.mockScoreboard})
	s.ErrorIs(err, ErrNilDiceRoller)

	_, err = New(&Config{ScoreboardRepo: s.mockScoreboard, DiceRoller: s.mockDiceRoller})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{ScoreboardRepo: s.mockScoreboard, DiceRoller: s.mockDiceRoller, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)

	_, err = New(&Config{
		ScoreboardRepo: s.mockScoreboard,
		DiceRoller:     s.mockDiceRoller,
		Clock:          s.mockClock,
		UUIDGenerator:  s.mockUUID,
		RowLength:      7,
	})
	s.ErrorIs(err, board.ErrInvalidBoard)
}

func (s *GameServiceTestSuite) TestNewAppliesDefaults() {
	s.Equal(board.DefaultConfig(), s.svc.boardConfig)
	s.Equal(DefaultDiceSides, s.svc.diceSides)
	s.Equal(DefaultRevealDelay, s.svc.revealDelay)
	s.Equal(DefaultSettleDelay, s.svc.settleDelay)
	s.Equal(DefaultStepDelay, s.svc.stepDelay)
	s.Equal(DefaultAutomaticInterval, s.svc.automaticInterval)
}

func (s *GameServiceTestSuite) TestCreateGame() {
	seeded := dice.New(&dice.Config{Seed: 1})
	s.mockDiceRoller.EXPECT().Roll(board.DefaultSize).DoAndReturn(seeded.Roll).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return(s.testGameID)

	output, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{
		ChannelID: s.testChannelID,
	})
	s.Require().NoError(err)

	game := output.Game
	s.Equal(s.testGameID, game.ID)
	s.Equal(s.testChannelID, game.ChannelID)
	s.Equal(board.DefaultSize, game.BoardSize)
	s.Equal(board.DefaultRowLength, game.RowLength)
	s.Equal(s.testTime, game.CreatedAt)
	s.False(game.RoundActive)
	s.False(game.AutomaticMode)
	s.Zero(game.DiceFace)

	s.Require().Len(game.Players, 1)
	s.Equal(&models.Player{
		ID:          1,
		Name:        "Player 1",
		Position:    1,
		Color:       board.FirstPlayerColor,
		MoveHistory: []*models.Move{},
	}, game.Players[0])

	s.NotEmpty(game.Ladders)
	s.LessOrEqual(len(game.Ladders), board.MaxLadders)
	for i := 1; i < len(game.Ladders); i++ {
		s.Greater(game.Ladders[i-1].Start, game.Ladders[i].Start)
	}

	byChannel, err := s.gameService.GetGameByChannel(s.ctx, &GetGameByChannelInput{
		ChannelID: s.testChannelID,
	})
	s.Require().NoError(err)
	s.Equal(game, byChannel.Game)
}

func (s *GameServiceTestSuite) TestCreateGameRejectsBusyChannel() {
	s.addGame()

	_, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{
		ChannelID: s.testChannelID,
	})
	s.ErrorIs(err, ErrGameAlreadyExists)
}

func (s *GameServiceTestSuite) TestCreateGameWithoutChannel() {
	seeded := dice.New(&dice.Config{Seed: 2})
	s.mockDiceRoller.EXPECT().Roll(board.DefaultSize).DoAndReturn(seeded.Roll).AnyTimes()
	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("game-a"),
		s.mockUUID.EXPECT().NewUUID().Return("game-b"),
	)

	first, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{})
	s.Require().NoError(err)
	second, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{})
	s.Require().NoError(err)

	s.Equal("game-a", first.Game.ID)
	s.Equal("game-b", second.Game.ID)
	s.Empty(first.Game.ChannelID)
}

func (s *GameServiceTestSuite) TestGetGameNotFound() {
	_, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: "missing"})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.gameService.GetGameByChannel(s.ctx, &GetGameByChannelInput{ChannelID: "missing"})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.gameService.RollDice(s.ctx, &RollDiceInput{GameID: "missing"})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *GameServiceTestSuite) TestInvalidInput() {
	_, err := s.gameService.CreateGame(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.gameService.GetGame(s.ctx, &GetGameInput{})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.gameService.RollDice(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.gameService.SetAutomaticMode(s.ctx, &SetAutomaticModeInput{})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.gameService.EndGame(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *GameServiceTestSuite) TestRollDiceMovesPlayer() {
	s.addGame()
	s.expectInstantSleeps()
	s.expectRolls(4)

	output := s.roll()

	s.True(output.Played)
	s.Equal(4, output.Game.DiceFace)
	s.False(output.Game.IsRolling)
	s.False(output.Game.RoundActive)

	player := output.Game.Players[0]
	s.Equal(5, player.Position)
	s.Equal(1, player.DiceRolls)
	s.Equal(1, player.MovedSteps)
	s.False(player.Finished)
	s.Equal([]*models.Move{
		{From: 1, To: 5, Dice: 4, MoveNumber: 1},
	}, player.MoveHistory)
}

func (s *GameServiceTestSuite) TestPlayersRollInRosterOrder() {
	game := s.addGame()
	s.place(game, 10, 20, 30)
	s.expectInstantSleeps()
	s.expectRolls(1, 2, 3)

	var order []int
	s.gameService.AddListener(ListenerFunc(func(ctx context.Context, event *models.GameEvent) {
		if event.Type == models.EventRollStarted {
			order = append(order, event.PlayerID)
		}
	}))

	output := s.roll()

	s.Equal([]int{1, 2, 3}, order)
	s.Equal(11, output.Game.Players[0].Position)
	s.Equal(22, output.Game.Players[1].Position)
	s.Equal(33, output.Game.Players[2].Position)
}

func (s *GameServiceTestSuite) TestLadderUsesExpectedPosition() {
	game := s.addGame(&models.Ladder{Start: 54, End: 10})
	s.place(game, 50)
	s.expectInstantSleeps()
	s.expectRolls(4)

	output := s.roll()

	player := output.Game.Players[0]
	s.Equal(10, player.Position)
	s.Equal(1, player.DiceRolls)
	s.Equal([]*models.Move{
		{From: 50, To: 54, Dice: 4, MoveNumber: 1},
		{From: 54, To: 10, MoveType: models.MoveTypeLadder, MoveNumber: 1},
	}, player.MoveHistory)
}

func (s *GameServiceTestSuite) TestClimbingLadder() {
	game := s.addGame(&models.Ladder{Start: 4, End: 60})
	s.place(game, 1)
	s.expectInstantSleeps()
	s.expectRolls(3)

	output := s.roll()

	s.Equal(60, output.Game.Players[0].Position)
	s.True(output.Game.Players[0].MoveHistory[1].IsLadder())
}

func (s *GameServiceTestSuite) TestLaddersDoNotChain() {
	game := s.addGame(
		&models.Ladder{Start: 40, End: 30},
		&models.Ladder{Start: 30, End: 80},
	)
	s.place(game, 35)
	s.expectInstantSleeps()
	s.expectRolls(5)

	output := s.roll()

	player := output.Game.Players[0]
	s.Equal(30, player.Position)
	s.Len(player.MoveHistory, 2)
}

func (s *GameServiceTestSuite) TestPassingOverLadderDoesNotTriggerIt() {
	game := s.addGame(&models.Ladder{Start: 12, End: 2})
	s.place(game, 10)
	s.expectInstantSleeps()
	s.expectRolls(5)

	output := s.roll()

	s.Equal(15, output.Game.Players[0].Position)
	s.Len(output.Game.Players[0].MoveHistory, 1)
}

func (s *GameServiceTestSuite) TestRollPastFinishClampsAndFinishes() {
	game := s.addGame(&models.Ladder{Start: 99, End: 40})
	s.place(game, 97)
	s.expectInstantSleeps()
	s.expectRolls(5)
	s.mockDiceRoller.EXPECT().Roll(360).Return(120)
	s.mockUUID.EXPECT().NewUUID().Return("result-1")
	s.mockScoreboard.EXPECT().RecordResult(gomock.Any(), &scoreboard.RecordResultInput{
		Result: &models.Result{
			ID:         "result-1",
			GameID:     s.testGameID,
			PlayerID:   1,
			PlayerName: "Player 1",
			Color:      board.FirstPlayerColor,
			DiceRolls:  1,
			FinishedAt: s.testTime,
		},
	}).Return(nil)

	output := s.roll()

	s.Require().Len(output.Game.Players, 2)
	finished := output.Game.Players[0]
	s.Equal(100, finished.Position)
	s.True(finished.Finished)
	s.Equal([]*models.Move{
		{From: 97, To: 100, Dice: 5, MoveNumber: 1},
	}, finished.MoveHistory)

	spawned := output.Game.Players[1]
	s.Equal(2, spawned.ID)
	s.Equal("Player 2", spawned.Name)
	s.Equal(1, spawned.Position)
	s.Equal("hsl(119, 100%, 50%)", spawned.Color)
	s.Zero(spawned.DiceRolls)
	s.Empty(spawned.MoveHistory)
}

func (s *GameServiceTestSuite) TestSpawnScenario() {
	game := s.addGame()
	s.place(game, 88)
	s.expectInstantSleeps()
	s.mockUUID.EXPECT().NewUUID().Return("result-1")
	s.mockScoreboard.EXPECT().RecordResult(gomock.Any(), gomock.Any()).Return(nil)
	s.mockDiceRoller.EXPECT().Roll(360).Return(1)
	// Player 1 rolls 6, 6; then only Player 2 rolls 3
	s.expectRolls(6, 6, 3)

	output := s.roll()
	s.Len(output.Game.Players, 1)
	s.Equal(94, output.Game.Players[0].Position)

	output = s.roll()
	s.Require().Len(output.Game.Players, 2)
	s.True(output.Game.Players[0].Finished)
	s.Equal(2, output.Game.Players[0].DiceRolls)
	s.Equal(1, output.Game.Players[1].Position)
	s.Zero(output.Game.Players[1].DiceRolls)

	output = s.roll()
	s.Require().Len(output.Game.Players, 2)
	s.Equal(100, output.Game.Players[0].Position)
	s.Equal(2, output.Game.Players[0].DiceRolls)
	s.Len(output.Game.Players[0].MoveHistory, 2)
	s.True(output.Game.Players[0].Finished)
	s.Equal(4, output.Game.Players[1].Position)
	s.Equal(1, output.Game.Players[1].DiceRolls)
}

func (s *GameServiceTestSuite) TestOneSpawnWhenTwoPlayersFinishTogether() {
	game := s.addGame()
	s.place(game, 95, 96)
	s.expectInstantSleeps()
	s.expectRolls(5, 4)
	s.mockDiceRoller.EXPECT().Roll(360).Return(200)
	s.mockUUID.EXPECT().NewUUID().Return("result").Times(2)
	s.mockScoreboard.EXPECT().RecordResult(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	var events []models.EventType
	s.gameService.AddListener(ListenerFunc(func(ctx context.Context, event *models.GameEvent) {
		if event.Type == models.EventPlayerFinished || event.Type == models.EventPlayerSpawned {
			events = append(events, event.Type)
		}
	}))

	output := s.roll()

	s.Require().Len(output.Game.Players, 3)
	s.True(output.Game.Players[0].Finished)
	s.True(output.Game.Players[1].Finished)
	s.Equal(3, output.Game.Players[2].ID)
	s.Equal(1, output.Game.Players[2].Position)
	s.Equal([]models.EventType{
		models.EventPlayerFinished,
		models.EventPlayerSpawned,
		models.EventPlayerFinished,
	}, events)
}

func (s *GameServiceTestSuite) TestSpawnIsNoOpWhenStartIsOccupied() {
	game := s.addGame()

	game.mu.Lock()
	spawned := game.spawnPlayerLocked()
	game.mu.Unlock()

	s.Nil(spawned)
	s.Len(game.snapshot().Players, 1)
}

func (s *GameServiceTestSuite) TestFinishedPlayersNeverRollAgain() {
	game := s.addGame()
	s.place(game, 100, 10)
	game.players[0].Finished = true
	game.players[0].DiceRolls = 17
	s.expectInstantSleeps()
	s.expectRolls(2)

	output := s.roll()

	s.True(output.Game.Players[0].Finished)
	s.Equal(100, output.Game.Players[0].Position)
	s.Equal(17, output.Game.Players[0].DiceRolls)
	s.Equal(12, output.Game.Players[1].Position)
}

func (s *GameServiceTestSuite) TestScoreboardFailureDoesNotStopGame() {
	game := s.addGame()
	s.place(game, 99)
	s.expectInstantSleeps()
	s.expectRolls(1)
	s.mockDiceRoller.EXPECT().Roll(360).Return(10)
	s.mockUUID.EXPECT().NewUUID().Return("result-1")
	s.mockScoreboard.EXPECT().RecordResult(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	output := s.roll()

	s.True(output.Played)
	s.False(output.Game.RoundActive)
	s.True(output.Game.Players[0].Finished)
	s.Len(output.Game.Players, 2)
}

func (s *GameServiceTestSuite) TestEventSequenceAndPacing() {
	s.addGame()
	s.expectRolls(2)
	gomock.InOrder(
		s.mockClock.EXPECT().Sleep(gomock.Any(), DefaultRevealDelay).Return(nil),
		s.mockClock.EXPECT().Sleep(gomock.Any(), DefaultSettleDelay).Return(nil),
		s.mockClock.EXPECT().Sleep(gomock.Any(), DefaultStepDelay).Return(nil).Times(2),
	)

	var events []*models.GameEvent
	s.gameService.AddListener(ListenerFunc(func(ctx context.Context, event *models.GameEvent) {
		events = append(events, event)
	}))

	s.roll()

	types := make([]models.EventType, len(events))
	for i, event := range events {
		types[i] = event.Type
	}
	s.Equal([]models.EventType{
		models.EventRollStarted,
		models.EventDiceRevealed,
		models.EventRollSettled,
		models.EventPlayerStepped,
		models.EventPlayerStepped,
		models.EventMoveRecorded,
		models.EventRoundSettled,
	}, types)

	// the die face only shows once the reveal pause is over
	s.True(events[0].Game.IsRolling)
	s.Zero(events[0].Game.DiceFace)
	s.True(events[1].Game.IsRolling)
	s.Equal(2, events[1].Game.DiceFace)
	s.False(events[2].Game.IsRolling)

	s.Equal(2, events[3].Game.Players[0].Position)
	s.Equal(1, events[3].Game.Players[0].MovedSteps)
	s.Zero(events[3].Game.Players[0].DiceRolls)
	s.Equal(3, events[4].Game.Players[0].Position)
	s.Equal(1, events[5].Game.Players[0].DiceRolls)

	for _, event := range events[:6] {
		s.True(event.Game.RoundActive)
		s.Equal(s.testGameID, event.GameID)
	}
	s.False(events[6].Game.RoundActive)
}

func (s *GameServiceTestSuite) TestCancelledContextStillCommitsRound() {
	s.addGame()
	s.expectRolls(6)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	output, err := s.gameService.RollDice(ctx, &RollDiceInput{GameID: s.testGameID})
	s.Require().NoError(err)

	s.True(output.Played)
	s.False(output.Game.RoundActive)
	s.Equal(7, output.Game.Players[0].Position)
}

func (s *GameServiceTestSuite) TestRollDiceIgnoredWhileRoundActive() {
	s.addGame()
	s.expectRolls(3)

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	s.mockClock.EXPECT().Sleep(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, d time.Duration) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	}).AnyTimes()

	first := make(chan *RollDiceOutput)
	go func() {
		output, err := s.gameService.RollDice(s.ctx, &RollDiceInput{GameID: s.testGameID})
		s.NoError(err)
		first <- output
	}()

	<-started

	second := s.roll()
	s.False(second.Played)
	s.True(second.Game.RoundActive)
	s.Zero(second.Game.Players[0].DiceRolls)
	s.Equal(1, second.Game.Players[0].Position)

	close(release)

	output := <-first
	s.True(output.Played)
	s.Equal(1, output.Game.Players[0].DiceRolls)
	s.Equal(4, output.Game.Players[0].Position)
	s.Len(output.Game.Players[0].MoveHistory, 1)
}

func (s *GameServiceTestSuite) TestInvariantsHoldOverManyRounds() {
	seeded := dice.New(&dice.Config{Seed: 99})
	ladders := board.GenerateLadders(seeded, board.DefaultConfig())
	game := s.addGame(ladders...)
	s.place(game, 1, 30, 60)

	s.expectInstantSleeps()
	s.mockDiceRoller.EXPECT().Roll(gomock.Any()).DoAndReturn(seeded.Roll).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("result").AnyTimes()
	s.mockScoreboard.EXPECT().RecordResult(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	finished := make(map[int]bool)
	historyLen := make(map[int]int)
	s.gameService.AddListener(ListenerFunc(func(ctx context.Context, event *models.GameEvent) {
		for _, player := range event.Game.Players {
			s.GreaterOrEqual(player.Position, 1)
			s.LessOrEqual(player.Position, board.DefaultSize)

			if finished[player.ID] {
				s.True(player.Finished, "player %d left the finished state", player.ID)
			}
			finished[player.ID] = player.Finished

			s.GreaterOrEqual(len(player.MoveHistory), historyLen[player.ID])
			historyLen[player.ID] = len(player.MoveHistory)

			for _, move := range player.MoveHistory {
				s.LessOrEqual(move.MoveNumber, player.DiceRolls)
			}
		}
	}))

	before := game.snapshot()
	for round := 0; round < 200; round++ {
		after := s.roll().Game

		for _, prev := range before.Players {
			current := after.GetPlayer(prev.ID)
			s.Require().NotNil(current)
			if prev.Finished {
				s.Equal(prev.DiceRolls, current.DiceRolls)
				s.Equal(prev.Position, current.Position)
			} else {
				s.Equal(prev.DiceRolls+1, current.DiceRolls)
			}
		}
		before = after
	}
}

func (s *GameServiceTestSuite) TestAutomaticModePlaysOneRoundPerSettledTick() {
	game := s.addGame()
	s.expectInstantSleeps()
	s.expectRolls(3, 2, 4)

	ticker := newFakeTicker()
	s.mockClock.EXPECT().NewTicker(DefaultAutomaticInterval).Return(ticker)

	output, err := s.gameService.SetAutomaticMode(s.ctx, &SetAutomaticModeInput{
		GameID:  s.testGameID,
		Enabled: true,
	})
	s.Require().NoError(err)
	s.True(output.Changed)
	s.True(output.AutomaticMode)

	done := game.automatic.done

	for i := 0; i < 3; i++ {
		s.Require().True(ticker.tick(), "tick %d not received", i)
	}

	_, err = s.gameService.SetAutomaticMode(s.ctx, &SetAutomaticModeInput{
		GameID:  s.testGameID,
		Enabled: false,
	})
	s.Require().NoError(err)
	s.waitFor(done)
	s.waitFor(ticker.stopped)

	snapshot := game.snapshot()
	s.False(snapshot.AutomaticMode)
	s.Equal(3, snapshot.Players[0].DiceRolls)
	s.Equal(10, snapshot.Players[0].Position)
}

func (s *GameServiceTestSuite) TestAutomaticModeSkipsTicksWhileRoundActive() {
	game := s.addGame()
	s.mockDiceRoller.EXPECT().Roll(DefaultDiceSides).Return(5).Times(1)

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	s.mockClock.EXPECT().Sleep(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, d time.Duration) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	}).AnyTimes()

	ticker := newFakeTicker()
	s.mockClock.EXPECT().NewTicker(DefaultAutomaticInterval).Return(ticker)

	_, err := s.gameService.SetAutomaticMode(s.ctx, &SetAutomaticModeInput{
		GameID:  s.testGameID,
		Enabled: true,
	})
	s.Require().NoError(err)
	done := game.automatic.done

	manual := make(chan *RollDiceOutput)
	go func() {
		output, err := s.gameService.RollDice(s.ctx, &RollDiceInput{GameID: s.testGameID})
		s.NoError(err)
		manual <- output
	}()
	<-started

	s.Require().True(ticker.tick())
	s.Require().True(ticker.tick())

	_, err = s.gameService.SetAutomaticMode(s.ctx, &SetAutomaticModeInput{
		GameID:  s.testGameID,
		Enabled: false,
	})
	s.Require().NoError(err)
	s.waitFor(done)

	close(release)
	output := <-manual

	s.True(output.Played)
	s.Equal(1, output.Game.Players[0].DiceRolls)
	s.Equal(6, output.Game.Players[0].Position)
}

func (s *GameServiceTestSuite) TestToggleAutomaticMode() {
	game := s.addGame()
	ticker := newFakeTicker()
	s.mockClock.EXPECT().NewTicker(DefaultAutomaticInterval).Return(ticker)

	var changes []bool
	s.gameService.AddListener(ListenerFunc(func(ctx context.Context, event *models.GameEvent) {
		if event.Type == models.EventAutomaticModeChanged {
			changes = append(changes, event.Game.AutomaticMode)
		}
	}))

	output, err := s.gameService.ToggleAutomaticMode(s.ctx, &ToggleAutomaticModeInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.True(output.AutomaticMode)
	done := game.automatic.done

	// enabling twice is a no-op
	output, err = s.gameService.SetAutomaticMode(s.ctx, &SetAutomaticModeInput{GameID: s.testGameID, Enabled: true})
	s.Require().NoError(err)
	s.False(output.Changed)

	output, err = s.gameService.ToggleAutomaticMode(s.ctx, &ToggleAutomaticModeInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.False(output.AutomaticMode)
	s.waitFor(done)

	s.Equal([]bool{true, false}, changes)
}

func (s *GameServiceTestSuite) TestEndGameStopsAutomaticMode() {
	game := s.addGame()
	ticker := newFakeTicker()
	s.mockClock.EXPECT().NewTicker(DefaultAutomaticInterval).Return(ticker)

	_, err := s.gameService.SetAutomaticMode(s.ctx, &SetAutomaticModeInput{GameID: s.testGameID, Enabled: true})
	s.Require().NoError(err)
	done := game.automatic.done

	output, err := s.gameService.EndGame(s.ctx, &EndGameInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.False(output.Game.AutomaticMode)
	s.waitFor(done)

	_, err = s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.ErrorIs(err, ErrGameNotFound)
	_, err = s.gameService.GetGameByChannel(s.ctx, &GetGameByChannelInput{ChannelID: s.testChannelID})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.gameService.EndGame(s.ctx, &EndGameInput{GameID: s.testGameID})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *GameServiceTestSuite) TestUpdateGameMessage() {
	s.addGame()

	output, err := s.gameService.UpdateGameMessage(s.ctx, &UpdateGameMessageInput{
		GameID:    s.testGameID,
		MessageID: "message-1",
	})
	s.Require().NoError(err)
	s.True(output.Success)

	game, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.Equal("message-1", game.Game.MessageID)
}

func (s *GameServiceTestSuite) TestGetScoreboard() {
	results := []*models.Result{{ID: "result-1", DiceRolls: 12}}

	s.mockScoreboard.EXPECT().
		GetTopResults(gomock.Any(), &scoreboard.GetTopResultsInput{Limit: 5}).
		Return(&scoreboard.GetTopResultsOutput{Results: results}, nil)

	output, err := s.gameService.GetScoreboard(s.ctx, &GetScoreboardInput{Limit: 5})
	s.Require().NoError(err)
	s.Equal(results, output.Results)
}

func (s *GameServiceTestSuite) TestGetScoreboardForGame() {
	results := []*models.Result{{ID: "result-1", GameID: s.testGameID}}

	s.mockScoreboard.EXPECT().
		GetResultsForGame(gomock.Any(), &scoreboard.GetResultsForGameInput{GameID: s.testGameID}).
		Return(&scoreboard.GetResultsForGameOutput{Results: results}, nil)

	output, err := s.gameService.GetScoreboard(s.ctx, &GetScoreboardInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.Equal(results, output.Results)
}

func (s *GameServiceTestSuite) TestGetScoreboardError() {
	s.mockScoreboard.EXPECT().
		GetTopResults(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))

	_, err := s.gameService.GetScoreboard(s.ctx, nil)
	s.ErrorContains(err, "failed to get scoreboard")
}

func (s *GameServiceTestSuite) waitFor(ch <-chan struct{}) {
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting")
	}
}

// fakeTicker delivers ticks only when the test sends them. The channel is
// unbuffered, so a successful tick means the loop was idle and received it.
type fakeTicker struct {
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
	}
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTicker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopped)
	})
}

func (t *fakeTicker) tick() bool {
	select {
	case t.ch <- time.Time{}:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}
