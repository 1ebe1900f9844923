package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	matchKeyPrefix = "match:"
	matchListKey   = "matches"

	// maxListedMatches bounds the recent-matches list; older IDs fall off.
	maxListedMatches = 100
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Match, error)
}

type dbMatch struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchRepository - ttl of 0 keeps records forever.
func NewMatchRepository(client *redis.Client, ttl time.Duration) MatchRepository {
	return &dbMatch{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMatch) CreateOrUpdate(ctx context.Context, match *entity.Match) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKeyPrefix+match.ID, matchJSON, that.ttl)
		pipe.LRem(ctx, matchListKey, 0, match.ID)
		pipe.LPush(ctx, matchListKey, match.ID)
		pipe.LTrim(ctx, matchListKey, 0, maxListedMatches-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	response, err := that.client.Get(ctx, matchKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Match{}, ErrMatchNotFound
	}

	if err != nil {
		return &entity.Match{}, fmt.Errorf("failed to get match by id: %w", err)
	}

	var existingMatch entity.Match
	if err = json.Unmarshal([]byte(response), &existingMatch); err != nil {
		return &entity.Match{}, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &existingMatch, nil
}

func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	var deleted *redis.IntCmd

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, matchKeyPrefix+id)
		pipe.LRem(ctx, matchListKey, 0, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete match by ID: %w", err)
	}

	if deleted.Val() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

// ListRecent - newest first. IDs whose record has expired are skipped.
func (that *dbMatch) ListRecent(ctx context.Context, limit int) ([]*entity.Match, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.LRange(ctx, matchListKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list match ids: %w", err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, matchKeyPrefix+id)
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	matches := make([]*entity.Match, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var match entity.Match
		if err = json.Unmarshal([]byte(raw), &match); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match: %w", err)
		}

		matches = append(matches, &match)
	}

	return matches, nil
}
