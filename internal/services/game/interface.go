package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/shoots/internal/services/game Service

import (
	"context"

	"github.com/KirkDiggler/shoots/internal/models"
)

// Service defines the interface for game operations
type Service interface {
	// CreateGame starts a new game with freshly generated ladders and one player
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// GetGame returns a snapshot of a game
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// GetGameByChannel returns a snapshot of the game played in a channel
	GetGameByChannel(ctx context.Context, input *GetGameByChannelInput) (*GetGameOutput, error)

	// RollDice plays one round: every unfinished player rolls and moves once.
	// It blocks until the round has settled.
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// SetAutomaticMode turns timer driven rounds on or off
	SetAutomaticMode(ctx context.Context, input *SetAutomaticModeInput) (*SetAutomaticModeOutput, error)

	// ToggleAutomaticMode flips automatic mode
	ToggleAutomaticMode(ctx context.Context, input *ToggleAutomaticModeInput) (*SetAutomaticModeOutput, error)

	// UpdateGameMessage records the chat message displaying a game
	UpdateGameMessage(ctx context.Context, input *UpdateGameMessageInput) (*UpdateGameMessageOutput, error)

	// EndGame stops a game and forgets it
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// GetScoreboard returns the results of finished players
	GetScoreboard(ctx context.Context, input *GetScoreboardInput) (*GetScoreboardOutput, error)

	// AddListener registers a listener for game events
	AddListener(listener Listener)
}

// Listener receives every observable change of every game. Listeners are
// called synchronously from the goroutine driving the game, in event order,
// so they must return quickly.
type Listener interface {
	OnGameEvent(ctx context.Context, event *models.GameEvent)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(ctx context.Context, event *models.GameEvent)

// OnGameEvent calls f
func (f ListenerFunc) OnGameEvent(ctx context.Context, event *models.GameEvent) {
	f(ctx, event)
}
