package scoreboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	resultKeyPrefix      = "result:"
	gameResultsKeyPrefix = "game_results:"
	scoreboardKey        = "scoreboard"

	// DefaultLimit is used when GetTopResults is called without a limit
	DefaultLimit = 10

	// rollWeight keeps the roll count dominant in the ranking score while
	// the finish time in unix seconds breaks ties
	rollWeight = 1e10
)

// ErrResultNotFound is returned when a result is not found
var ErrResultNotFound = errors.New("result not found")

// Config holds configuration for the Redis scoreboard repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed scoreboard repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// RecordResult persists a result and indexes it on the global and per-game boards
func (r *redisRepository) RecordResult(ctx context.Context, input *RecordResultInput) error {
	if input == nil || input.Result == nil {
		return errors.New("input and result cannot be nil")
	}

	result := input.Result
	if result.ID == "" {
		return errors.New("result ID cannot be empty")
	}

	if result.GameID == "" {
		return errors.New("game ID cannot be empty")
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	pipe := r.client.TxPipeline()

	pipe.Set(ctx, resultKeyPrefix+result.ID, resultJSON, 0)

	pipe.ZAdd(ctx, scoreboardKey, redis.Z{
		Score:  rankingScore(result),
		Member: result.ID,
	})

	pipe.ZAdd(ctx, gameResultsKeyPrefix+result.GameID, redis.Z{
		Score:  float64(result.FinishedAt.UnixNano()),
		Member: result.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

// GetResult retrieves a result by ID from Redis
func (r *redisRepository) GetResult(ctx context.Context, input *GetResultInput) (*models.Result, error) {
	if input == nil || input.ResultID == "" {
		return nil, errors.New("input and result ID cannot be empty")
	}

	resultJSON, err := r.client.Get(ctx, resultKeyPrefix+input.ResultID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var result models.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// GetTopResults returns the best results across all games
func (r *redisRepository) GetTopResults(ctx context.Context, input *GetTopResultsInput) (*GetTopResultsOutput, error) {
	limit := DefaultLimit
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	ids, err := r.client.ZRange(ctx, scoreboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get scoreboard: %w", err)
	}

	results, err := r.loadResults(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &GetTopResultsOutput{
		Results: results,
	}, nil
}

// GetResultsForGame returns every result recorded for a game
func (r *redisRepository) GetResultsForGame(ctx context.Context, input *GetResultsForGameInput) (*GetResultsForGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	ids, err := r.client.ZRange(ctx, gameResultsKeyPrefix+input.GameID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game results: %w", err)
	}

	results, err := r.loadResults(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &GetResultsForGameOutput{
		Results: results,
	}, nil
}

// loadResults fetches results in the order of ids, skipping any that vanished
func (r *redisRepository) loadResults(ctx context.Context, ids []string) ([]*models.Result, error) {
	if len(ids) == 0 {
		return []*models.Result{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = resultKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	results := make([]*models.Result, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var result models.Result
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, &result)
	}

	return results, nil
}

func rankingScore(result *models.Result) float64 {
	return float64(result.DiceRolls)*rollWeight + float64(result.FinishedAt.Unix())
}
