package scoreboard

import "github.com/KirkDiggler/shoots/internal/models"

type RecordResultInput struct {
	Result *models.Result
}

type GetResultInput struct {
	ResultID string
}

type GetTopResultsInput struct {
	// Limit caps the number of results, DefaultLimit when zero
	Limit int
}

type GetTopResultsOutput struct {
	Results []*models.Result
}

type GetResultsForGameInput struct {
	GameID string
}

type GetResultsForGameOutput struct {
	Results []*models.Result
}
