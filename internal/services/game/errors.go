package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound      GameError = "game not found"
	ErrGameAlreadyExists GameError = "game already exists for this channel"
	ErrInvalidInput      GameError = "invalid input"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilScoreboardRepo GameError = "scoreboard repository cannot be nil"
	ErrNilDiceRoller     GameError = "dice roller cannot be nil"
	ErrNilClock          GameError = "clock cannot be nil"
	ErrNilUUIDGenerator  GameError = "UUID generator cannot be nil"
	ErrNilListener       GameError = "listener cannot be nil"
)
