package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type MatchService interface {
	SaveMatch(ctx context.Context, match *entity.Match) error
	CompleteMatch(ctx context.Context, match *entity.Match) error

	RecentMatches(ctx context.Context, limit int) ([]*entity.Match, error)
	GetScore(ctx context.Context) (entity.Score, error)
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Match, error)
}

type scoreRepo interface {
	Increment(ctx context.Context, winner string) error
	Get(ctx context.Context) (entity.Score, error)
}

type matchService struct {
	matchRepo matchRepo
	scoreRepo scoreRepo
}

func NewMatchService(matchRepo matchRepo, scoreRepo scoreRepo) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		scoreRepo: scoreRepo,
	}
}

func (that *matchService) SaveMatch(ctx context.Context, match *entity.Match) error {
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}
	return nil
}

// CompleteMatch - stores a finished match and counts its outcome.
func (that *matchService) CompleteMatch(ctx context.Context, match *entity.Match) error {
	if !match.IsFinished() {
		return fmt.Errorf("%w: match %s", entity.ErrUnknownMatchStatus, match.ID)
	}

	if err := that.SaveMatch(ctx, match); err != nil {
		return err
	}

	if err := that.scoreRepo.Increment(ctx, match.Winner); err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	return nil
}

func (that *matchService) RecentMatches(ctx context.Context, limit int) ([]*entity.Match, error) {
	matches, err := that.matchRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve matches from storage: %w", err)
	}
	return matches, nil
}

func (that *matchService) GetScore(ctx context.Context) (entity.Score, error) {
	score, err := that.scoreRepo.Get(ctx)
	if err != nil {
		return entity.Score{}, fmt.Errorf("failed to retrieve score from storage: %w", err)
	}
	return score, nil
}

// nopMatchService - used when match history is disabled.
type nopMatchService struct{}

func NewNopMatchService() MatchService {
	return nopMatchService{}
}

func (nopMatchService) SaveMatch(context.Context, *entity.Match) error { return nil }

func (nopMatchService) CompleteMatch(context.Context, *entity.Match) error { return nil }

func (nopMatchService) RecentMatches(context.Context, int) ([]*entity.Match, error) {
	return nil, nil
}

func (nopMatchService) GetScore(context.Context) (entity.Score, error) {
	return entity.Score{}, nil
}
