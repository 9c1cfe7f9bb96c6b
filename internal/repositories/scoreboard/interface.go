package scoreboard

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/shoots/internal/repositories/scoreboard Repository

import (
	"context"

	"github.com/KirkDiggler/shoots/internal/models"
)

// Repository stores the results of players who reached the finish
type Repository interface {
	// RecordResult persists a finished player's result
	RecordResult(ctx context.Context, input *RecordResultInput) error

	// GetResult retrieves a result by ID
	GetResult(ctx context.Context, input *GetResultInput) (*models.Result, error)

	// GetTopResults returns results ordered by fewest rolls, earliest first on ties
	GetTopResults(ctx context.Context, input *GetTopResultsInput) (*GetTopResultsOutput, error)

	// GetResultsForGame returns a game's results in finishing order
	GetResultsForGame(ctx context.Context, input *GetResultsForGameInput) (*GetResultsForGameOutput, error)
}
