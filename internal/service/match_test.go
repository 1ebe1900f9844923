package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var errRedisDown = errors.New("redis down")

type mockMatchRepo struct {
	mock.Mock
}

func (that *mockMatchRepo) CreateOrUpdate(ctx context.Context, match *entity.Match) error {
	args := that.Called(ctx, match)
	return args.Error(0)
}

func (that *mockMatchRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Match, error) {
	args := that.Called(ctx, limit)
	matches, _ := args.Get(0).([]*entity.Match)
	return matches, args.Error(1)
}

type mockScoreRepo struct {
	mock.Mock
}

func (that *mockScoreRepo) Increment(ctx context.Context, winner string) error {
	args := that.Called(ctx, winner)
	return args.Error(0)
}

func (that *mockScoreRepo) Get(ctx context.Context) (entity.Score, error) {
	args := that.Called(ctx)
	return args.Get(0).(entity.Score), args.Error(1)
}

func finishedMatch(t *testing.T, winner string) *entity.Match {
	t.Helper()

	match, err := entity.NewMatch("123", entity.PlayerO, time.Now())
	require.NoError(t, err)
	require.NoError(t, match.Finish(winner, time.Now()))

	return match
}

func TestMatchService_CompleteMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the match and counts the outcome", func(t *testing.T) {
		// Given: repositories accepting writes
		matches := &mockMatchRepo{}
		scores := &mockScoreRepo{}
		svc := NewMatchService(matches, scores)
		match := finishedMatch(t, entity.PlayerX)

		matches.On("CreateOrUpdate", mock.Anything, match).Return(nil).Once()
		scores.On("Increment", mock.Anything, entity.PlayerX).Return(nil).Once()

		// When: completing the match
		err := svc.CompleteMatch(ctx, match)

		// Then: both writes happened
		require.NoError(t, err)
		matches.AssertExpectations(t)
		scores.AssertExpectations(t)
	})

	t.Run("Does not count when the save fails", func(t *testing.T) {
		matches := &mockMatchRepo{}
		scores := &mockScoreRepo{}
		svc := NewMatchService(matches, scores)
		match := finishedMatch(t, entity.PlayerTie)

		matches.On("CreateOrUpdate", mock.Anything, match).Return(errRedisDown).Once()

		err := svc.CompleteMatch(ctx, match)

		require.ErrorIs(t, err, errRedisDown)
		scores.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
	})

	t.Run("Rejects ongoing matches", func(t *testing.T) {
		matches := &mockMatchRepo{}
		scores := &mockScoreRepo{}
		svc := NewMatchService(matches, scores)

		match, err := entity.NewMatch("123", entity.PlayerX, time.Now())
		require.NoError(t, err)

		err = svc.CompleteMatch(ctx, match)

		require.ErrorIs(t, err, entity.ErrUnknownMatchStatus)
		matches.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})
}

func TestMatchService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("RecentMatches wraps storage errors", func(t *testing.T) {
		matches := &mockMatchRepo{}
		svc := NewMatchService(matches, &mockScoreRepo{})

		matches.On("ListRecent", mock.Anything, 5).Return(nil, errRedisDown).Once()

		_, err := svc.RecentMatches(ctx, 5)

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("GetScore returns the stored counters", func(t *testing.T) {
		scores := &mockScoreRepo{}
		svc := NewMatchService(&mockMatchRepo{}, scores)

		scores.On("Get", mock.Anything).Return(entity.Score{X: 1, Draw: 4}, nil).Once()

		score, err := svc.GetScore(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.Score{X: 1, Draw: 4}, score)
	})
}

func TestNopMatchService(t *testing.T) {
	ctx := context.Background()
	svc := NewNopMatchService()

	assert.NoError(t, svc.SaveMatch(ctx, &entity.Match{}))
	assert.NoError(t, svc.CompleteMatch(ctx, &entity.Match{}))

	matches, err := svc.RecentMatches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
