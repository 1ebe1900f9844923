package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errStorageIsFull = errors.New("storage is full")

type mockMatchService struct {
	mock.Mock
}

func (that *mockMatchService) SaveMatch(ctx context.Context, match *entity.Match) error {
	args := that.Called(ctx, match)
	return args.Error(0)
}

func (that *mockMatchService) CompleteMatch(ctx context.Context, match *entity.Match) error {
	args := that.Called(ctx, match)
	return args.Error(0)
}

type mockBotService struct {
	mock.Mock
}

func (that *mockBotService) NextMove(board *tictactoe.Board, mark tictactoe.Player) (tictactoe.Move, error) {
	args := that.Called(board, mark)
	return args.Get(0).(tictactoe.Move), args.Error(1)
}

func (that *mockBotService) Evaluate(board *tictactoe.Board) (tictactoe.Result, error) {
	args := that.Called(board)
	return args.Get(0).(tictactoe.Result), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager(t *testing.T, human tictactoe.Player) (*GameManager, *mockMatchService) {
	t.Helper()

	matches := &mockMatchService{}
	matches.On("SaveMatch", mock.Anything, mock.AnythingOfType("*entity.Match")).Return(nil)

	manager := NewGameManager(discardLogger(), service.NewBotService(discardLogger(), false), matches)
	_, err := manager.NewGame(context.Background(), human)
	require.NoError(t, err)

	return manager, matches
}

func TestGameManager_NewGame(t *testing.T) {
	// Given: a manager with a match service accepting writes
	manager, matches := newManager(t, tictactoe.PlayerO)

	// Then: a fresh match is stored with the agent on X
	match := manager.Match()
	require.NotNil(t, match)
	assert.NotEmpty(t, match.ID)
	assert.Equal(t, entity.PlayerO, match.HumanMark)
	assert.Equal(t, entity.PlayerX, match.AgentMark)
	assert.True(t, manager.Board().IsEmpty())
	assert.False(t, manager.IsHumanTurn())
	assert.Equal(t, tictactoe.PlayerX, manager.Agent())
	matches.AssertNumberOfCalls(t, "SaveMatch", 1)
}

func TestGameManager_HumanTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies a legal move", func(t *testing.T) {
		manager, _ := newManager(t, tictactoe.PlayerX)

		require.NoError(t, manager.HumanTurn(ctx, 1, 1))

		assert.Equal(t, tictactoe.CellX, manager.Board().At(1, 1))
		assert.Equal(t, []entity.Move{{Mark: entity.PlayerX, Row: 1, Col: 1}}, manager.Match().Moves)
	})

	t.Run("Rejects illegal moves without changing the board", func(t *testing.T) {
		manager, _ := newManager(t, tictactoe.PlayerX)
		before := manager.Board()

		err := manager.HumanTurn(ctx, 3, 0)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, before, manager.Board())
		assert.True(t, manager.IsHumanTurn())
	})

	t.Run("Rejects moves out of turn", func(t *testing.T) {
		manager, _ := newManager(t, tictactoe.PlayerO)

		err := manager.HumanTurn(ctx, 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Rejects moves before a game is started", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), &mockBotService{}, &mockMatchService{})

		err := manager.HumanTurn(ctx, 0, 0)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Board copies do not leak into the game", func(t *testing.T) {
		manager, _ := newManager(t, tictactoe.PlayerX)

		require.True(t, manager.Board().Play(0, 0))

		assert.True(t, manager.Board().IsEmpty())
	})
}

func TestGameManager_AgentTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Agent opens at (0,0)", func(t *testing.T) {
		manager, _ := newManager(t, tictactoe.PlayerO)

		move, err := manager.AgentTurn(ctx)

		require.NoError(t, err)
		assert.Equal(t, tictactoe.Move{Row: 0, Col: 0}, move)
		assert.Equal(t, tictactoe.CellX, manager.Board().At(0, 0))
		assert.True(t, manager.IsHumanTurn())
	})

	t.Run("Wraps bot failures", func(t *testing.T) {
		bot := &mockBotService{}
		matches := &mockMatchService{}
		matches.On("SaveMatch", mock.Anything, mock.Anything).Return(nil)
		manager := NewGameManager(discardLogger(), bot, matches)
		_, err := manager.NewGame(ctx, tictactoe.PlayerO)
		require.NoError(t, err)

		bot.On("NextMove", mock.Anything, tictactoe.PlayerX).
			Return(tictactoe.Move{}, apperror.ErrNoAvailableMoves).
			Once()

		_, err = manager.AgentTurn(ctx)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
		assert.True(t, manager.Board().IsEmpty())
	})

	t.Run("Reports an illegal bot move", func(t *testing.T) {
		bot := &mockBotService{}
		matches := &mockMatchService{}
		matches.On("SaveMatch", mock.Anything, mock.Anything).Return(nil)
		manager := NewGameManager(discardLogger(), bot, matches)
		_, err := manager.NewGame(ctx, tictactoe.PlayerO)
		require.NoError(t, err)

		bot.On("NextMove", mock.Anything, tictactoe.PlayerX).
			Return(tictactoe.Move{Row: 7, Col: 7}, nil).
			Once()

		_, err = manager.AgentTurn(ctx)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
	})
}

func TestGameManager_FullGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Finished match is completed exactly once", func(t *testing.T) {
		// Given: the human plays X and always takes the first free cell
		manager, matches := newManager(t, tictactoe.PlayerX)
		matches.On("CompleteMatch", mock.Anything, mock.AnythingOfType("*entity.Match")).Return(nil).Once()

		// When: the game is played out
		for !manager.HasEnded() {
			if manager.IsHumanTurn() {
				legal := manager.Board().LegalMoves()
				require.NoError(t, manager.HumanTurn(ctx, legal[0].Row, legal[0].Col))
				continue
			}
			_, err := manager.AgentTurn(ctx)
			require.NoError(t, err)
		}

		// Then: the agent did not lose and the match is closed
		require.True(t, manager.HasEnded())
		assert.NotEqual(t, tictactoe.XWins, manager.Status())
		assert.True(t, manager.Match().IsFinished())
		assert.False(t, manager.Match().HumanWon())
		matches.AssertNumberOfCalls(t, "CompleteMatch", 1)

		_, err := manager.AgentTurn(ctx)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		require.ErrorIs(t, manager.HumanTurn(ctx, 0, 0), apperror.ErrGameFinished)
	})

	t.Run("Storage failures do not stop the game", func(t *testing.T) {
		matches := &mockMatchService{}
		matches.On("SaveMatch", mock.Anything, mock.Anything).Return(errStorageIsFull)
		matches.On("CompleteMatch", mock.Anything, mock.Anything).Return(errStorageIsFull).Once()

		manager := NewGameManager(discardLogger(), service.NewBotService(discardLogger(), false), matches)
		_, err := manager.NewGame(ctx, tictactoe.PlayerO)
		require.NoError(t, err)

		for !manager.HasEnded() {
			if manager.IsHumanTurn() {
				legal := manager.Board().LegalMoves()
				require.NoError(t, manager.HumanTurn(ctx, legal[0].Row, legal[0].Col))
				continue
			}
			_, err = manager.AgentTurn(ctx)
			require.NoError(t, err)
		}

		assert.Equal(t, tictactoe.XWins, manager.Status())
		assert.Equal(t, entity.PlayerX, manager.Match().Winner)
		matches.AssertExpectations(t)
	})
}

func TestGameManager_Hint(t *testing.T) {
	manager, _ := newManager(t, tictactoe.PlayerX)
	require.NoError(t, manager.HumanTurn(context.Background(), 0, 0))

	result, err := manager.Hint()

	require.NoError(t, err)
	assert.Equal(t, 0, result.Value)
}
