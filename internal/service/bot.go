package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type BotService interface {
	NextMove(board *tictactoe.Board, mark tictactoe.Player) (tictactoe.Move, error)
	Evaluate(board *tictactoe.Board) (tictactoe.Result, error)
}

type botService struct {
	logger *slog.Logger

	fullOpeningSearch bool
}

// NewBotService - fullOpeningSearch makes the bot search the empty board instead
// of answering with the fixed (0,0) opening.
func NewBotService(logger *slog.Logger, fullOpeningSearch bool) BotService {
	return &botService{
		logger:            logger.With("component", "bot"),
		fullOpeningSearch: fullOpeningSearch,
	}
}

// NextMove - asks the minimax agent for mark's move. The board is not modified.
func (that *botService) NextMove(board *tictactoe.Board, mark tictactoe.Player) (tictactoe.Move, error) {
	if board.HasEnded() {
		return tictactoe.Move{}, apperror.ErrNoAvailableMoves
	}

	if board.Turn() != mark {
		return tictactoe.Move{}, fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, board.Turn())
	}

	agent := tictactoe.NewAgent(board, mark)
	started := time.Now()

	var row, col int
	if that.fullOpeningSearch {
		result := agent.Search()
		row, col = result.Row, result.Col
	} else {
		row, col = agent.Play()
	}

	that.logger.Debug("bot chose move",
		"mark", mark.String(),
		"row", row,
		"col", col,
		"moves", board.Moves(),
		"elapsed", time.Since(started),
	)

	return tictactoe.Move{Row: row, Col: col}, nil
}

// Evaluate - full minimax value of the position for the player to move.
func (that *botService) Evaluate(board *tictactoe.Board) (tictactoe.Result, error) {
	if board.HasEnded() {
		return tictactoe.Result{}, apperror.ErrNoAvailableMoves
	}

	return tictactoe.NewAgent(board, board.Turn()).Search(), nil
}
