package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetMoveLogMessage returns a player's move history as display lines
	GetMoveLogMessage(ctx context.Context, input *GetMoveLogMessageInput) (*GetMoveLogMessageOutput, error)

	// GetLadderMessage returns an announcement for a ladder jump
	GetLadderMessage(ctx context.Context, input *GetLadderMessageInput) (*GetLadderMessageOutput, error)

	// GetFinishMessage returns an announcement for a player reaching the last cell
	GetFinishMessage(ctx context.Context, input *GetFinishMessageInput) (*GetFinishMessageOutput, error)

	// GetSpawnMessage returns an announcement for a player joining the board
	GetSpawnMessage(ctx context.Context, input *GetSpawnMessageInput) (*GetSpawnMessageOutput, error)

	// GetEventMessage returns the announcement for a game event, empty for
	// routine events
	GetEventMessage(ctx context.Context, input *GetEventMessageInput) (*GetEventMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
