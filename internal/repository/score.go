package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const scoreKey = "score"

type ScoreRepository interface {
	Increment(ctx context.Context, winner string) error
	Get(ctx context.Context) (entity.Score, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

// Increment - bumps the counter for winner: entity.PlayerX, entity.PlayerO or entity.PlayerTie.
func (that *dbScore) Increment(ctx context.Context, winner string) error {
	field, err := scoreField(winner)
	if err != nil {
		return err
	}

	if err = that.client.HIncrBy(ctx, scoreKey, field, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment score: %w", err)
	}

	return nil
}

func (that *dbScore) Get(ctx context.Context) (entity.Score, error) {
	fields, err := that.client.HGetAll(ctx, scoreKey).Result()
	if err != nil {
		return entity.Score{}, fmt.Errorf("failed to get score: %w", err)
	}

	var score entity.Score
	for field, target := range map[string]*int64{"x": &score.X, "o": &score.O, "draw": &score.Draw} {
		raw, ok := fields[field]
		if !ok {
			continue
		}

		if *target, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return entity.Score{}, fmt.Errorf("failed to parse %s score: %w", field, err)
		}
	}

	return score, nil
}

func scoreField(winner string) (string, error) {
	switch winner {
	case entity.PlayerX:
		return "x", nil
	case entity.PlayerO:
		return "o", nil
	case entity.PlayerTie:
		return "draw", nil
	default:
		return "", fmt.Errorf("%w: winner %q", apperror.ErrInvalidMark, winner)
	}
}
