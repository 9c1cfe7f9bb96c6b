package game

import (
	"time"

	"github.com/KirkDiggler/shoots/internal/common/clock"
	"github.com/KirkDiggler/shoots/internal/common/uuid"
	"github.com/KirkDiggler/shoots/internal/dice"
	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/KirkDiggler/shoots/internal/repositories/scoreboard"
)

const (
	// DefaultDiceSides is the die used for moving
	DefaultDiceSides = 6

	// DefaultRevealDelay is the pause between starting a roll and showing the die
	DefaultRevealDelay = 400 * time.Millisecond

	// DefaultSettleDelay is the pause between showing the die and moving
	DefaultSettleDelay = 600 * time.Millisecond

	// DefaultStepDelay is the pause before each single cell step
	DefaultStepDelay = 200 * time.Millisecond

	// DefaultAutomaticInterval is the tick of automatic mode
	DefaultAutomaticInterval = 1500 * time.Millisecond
)

// Config holds configuration for the game service
type Config struct {
	// Number of cells on the board, board.DefaultSize when zero
	BoardSize int

	// Cells per displayed row, board.DefaultRowLength when zero
	RowLength int

	// Number of sides on the dice
	DiceSides int

	// Animation pacing, defaults apply when zero
	RevealDelay time.Duration
	SettleDelay time.Duration
	StepDelay   time.Duration

	// Interval between automatic rounds
	AutomaticInterval time.Duration

	// Repository dependencies
	ScoreboardRepo scoreboard.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreateGameInput contains parameters for creating a new game
type CreateGameInput struct {
	// ChannelID is the chat channel the game is played in; optional
	ChannelID string
}

// CreateGameOutput contains the result of creating a new game
type CreateGameOutput struct {
	Game *models.Game
}

// GetGameInput defines the input for retrieving a game by ID
type GetGameInput struct {
	GameID string
}

// GetGameByChannelInput defines the input for retrieving a game by channel ID
type GetGameByChannelInput struct {
	ChannelID string
}

// GetGameOutput contains the retrieved game
type GetGameOutput struct {
	Game *models.Game
}

// RollDiceInput contains parameters for playing a round
type RollDiceInput struct {
	GameID string
}

// RollDiceOutput contains the result of playing a round
type RollDiceOutput struct {
	// Played is false when another round was still in progress
	Played bool

	// Game is the state after the round
	Game *models.Game
}

// SetAutomaticModeInput contains parameters for switching automatic mode
type SetAutomaticModeInput struct {
	GameID  string
	Enabled bool
}

// ToggleAutomaticModeInput contains parameters for flipping automatic mode
type ToggleAutomaticModeInput struct {
	GameID string
}

// SetAutomaticModeOutput contains the resulting mode
type SetAutomaticModeOutput struct {
	// AutomaticMode is the mode after the call
	AutomaticMode bool

	// Changed is false when the game was already in the requested mode
	Changed bool

	Game *models.Game
}

// UpdateGameMessageInput contains parameters for updating a game's message ID
type UpdateGameMessageInput struct {
	// GameID is the unique identifier for the game
	GameID string

	// MessageID is the chat message ID to associate with the game
	MessageID string
}

// UpdateGameMessageOutput contains the result of updating a game's message ID
type UpdateGameMessageOutput struct {
	Success bool
}

// EndGameInput contains parameters for ending a game
type EndGameInput struct {
	GameID string
}

// EndGameOutput contains the final state of an ended game
type EndGameOutput struct {
	Game *models.Game
}

// GetScoreboardInput contains parameters for retrieving results
type GetScoreboardInput struct {
	// GameID restricts the results to one game, in finishing order
	GameID string

	// Limit caps the number of overall results
	Limit int
}

// GetScoreboardOutput contains finished players' results
type GetScoreboardOutput struct {
	Results []*models.Result
}
