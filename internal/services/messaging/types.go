package messaging

import (
	"github.com/KirkDiggler/shoots/internal/dice"
	"github.com/KirkDiggler/shoots/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// Error types understood by GetErrorMessage
const (
	ErrorTypeGameNotFound = "game_not_found"
	ErrorTypeGameExists   = "game_exists"
	ErrorTypeRoundActive  = "round_active"
)

// GetMoveLogMessageInput contains the player whose moves are listed
type GetMoveLogMessageInput struct {
	Player *models.Player

	// Limit keeps only the most recent lines when positive
	Limit int
}

// GetMoveLogMessageOutput contains the formatted move log
type GetMoveLogMessageOutput struct {
	// Summary is the "Name: ..., Dice Rolls: ..." header line
	Summary string

	// Lines holds one formatted line per move, oldest first
	Lines []string
}

// GetLadderMessageInput describes a ladder jump
type GetLadderMessageInput struct {
	PlayerName string
	From       int
	To         int

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetLadderMessageOutput contains the ladder announcement
type GetLadderMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetFinishMessageInput describes a player reaching the last cell
type GetFinishMessageInput struct {
	PlayerName string
	DiceRolls  int

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetFinishMessageOutput contains the finish announcement
type GetFinishMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetSpawnMessageInput describes a player entering the board
type GetSpawnMessageInput struct {
	PlayerName string
}

// GetSpawnMessageOutput contains the spawn announcement
type GetSpawnMessageOutput struct {
	Message string
}

// GetEventMessageInput wraps the game event to announce
type GetEventMessageInput struct {
	Event *models.GameEvent
}

// GetEventMessageOutput contains the announcement, if any
type GetEventMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is one of the ErrorType constants
	ErrorType string
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// DiceRoller picks among message variants
	DiceRoller dice.Roller
}
