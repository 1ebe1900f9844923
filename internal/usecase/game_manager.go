package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type botService interface {
	NextMove(board *tictactoe.Board, mark tictactoe.Player) (tictactoe.Move, error)
	Evaluate(board *tictactoe.Board) (tictactoe.Result, error)
}

type matchService interface {
	SaveMatch(ctx context.Context, match *entity.Match) error
	CompleteMatch(ctx context.Context, match *entity.Match) error
}

// GameManager - owns the one real board of a human versus agent game.
type GameManager struct {
	logger *slog.Logger

	bot     botService
	matches matchService
	now     func() time.Time

	board *tictactoe.Board
	human tictactoe.Player
	match *entity.Match
}

func NewGameManager(logger *slog.Logger, bot botService, matches matchService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		bot:     bot,
		matches: matches,
		now:     time.Now,
	}
}

// NewGame - resets the board; human is the side the person plays.
func (that *GameManager) NewGame(ctx context.Context, human tictactoe.Player) (*entity.Match, error) {
	match, err := entity.NewMatch(uuid.NewString(), human.String(), that.now())
	if err != nil {
		return nil, fmt.Errorf("failed create match: %w", err)
	}

	that.board = tictactoe.NewBoard()
	that.human = human
	that.match = match

	that.saveMatch(ctx)

	that.logger.Info("game started", "match_id", match.ID, "human", human.String())

	return match, nil
}

// Board - a copy of the live board; callers cannot mutate the game through it.
func (that *GameManager) Board() *tictactoe.Board {
	if that.board == nil {
		return tictactoe.NewBoard()
	}
	return that.board.Copy()
}

func (that *GameManager) Match() *entity.Match {
	return that.match
}

func (that *GameManager) Human() tictactoe.Player {
	return that.human
}

func (that *GameManager) Agent() tictactoe.Player {
	return that.human.Opponent()
}

func (that *GameManager) IsHumanTurn() bool {
	return that.board != nil && that.board.Turn() == that.human
}

func (that *GameManager) Status() tictactoe.Status {
	if that.board == nil {
		return tictactoe.InProgress
	}
	return that.board.Status()
}

func (that *GameManager) HasEnded() bool {
	return that.board != nil && that.board.HasEnded()
}

// HumanTurn - applies the human's move. A rejected move leaves the game as it was.
func (that *GameManager) HumanTurn(ctx context.Context, row, col int) error {
	if err := that.confirmTurn(that.human); err != nil {
		return err
	}

	if !that.board.Play(row, col) {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrIllegalMove, row, col)
	}

	return that.afterMove(ctx, that.human, row, col)
}

// AgentTurn - lets the minimax agent move and returns the cell it took.
func (that *GameManager) AgentTurn(ctx context.Context) (tictactoe.Move, error) {
	if err := that.confirmTurn(that.Agent()); err != nil {
		return tictactoe.Move{}, err
	}

	move, err := that.bot.NextMove(that.board, that.Agent())
	if err != nil {
		return tictactoe.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if !that.board.Play(move.Row, move.Col) {
		return tictactoe.Move{}, fmt.Errorf("bot chose %w: (%d,%d)", apperror.ErrIllegalMove, move.Row, move.Col)
	}

	if err = that.afterMove(ctx, that.Agent(), move.Row, move.Col); err != nil {
		return tictactoe.Move{}, err
	}

	return move, nil
}

// Hint - the optimal move and value for whoever is to move.
func (that *GameManager) Hint() (tictactoe.Result, error) {
	if that.board == nil {
		return tictactoe.Result{}, apperror.ErrGameIsNotStarted
	}

	result, err := that.bot.Evaluate(that.board)
	if err != nil {
		return tictactoe.Result{}, fmt.Errorf("failed evaluate board: %w", err)
	}

	return result, nil
}

func (that *GameManager) confirmTurn(mark tictactoe.Player) error {
	if that.board == nil || that.match == nil {
		return apperror.ErrGameIsNotStarted
	}

	if that.board.HasEnded() {
		return apperror.ErrGameFinished
	}

	if that.board.Turn() != mark {
		return apperror.ErrNotYourTurn
	}

	return nil
}

func (that *GameManager) afterMove(ctx context.Context, mark tictactoe.Player, row, col int) error {
	if err := that.match.RecordMove(mark.String(), row, col); err != nil {
		return fmt.Errorf("failed record move: %w", err)
	}

	if !that.board.HasEnded() {
		that.saveMatch(ctx)
		return nil
	}

	if err := that.match.Finish(winnerMark(that.board.Status()), that.now()); err != nil {
		return fmt.Errorf("failed finish match: %w", err)
	}

	that.logger.Info("game finished", "match_id", that.match.ID, "winner", that.match.Winner, "moves", len(that.match.Moves))

	that.completeMatch(ctx)

	return nil
}

func (that *GameManager) saveMatch(ctx context.Context) {
	log := that.logger.With("method", "saveMatch")

	if err := that.matches.SaveMatch(ctx, that.match); err != nil {
		log.Error("failed to save match", "match_id", that.match.ID, "error", err)
	}
}

func (that *GameManager) completeMatch(ctx context.Context) {
	log := that.logger.With("method", "completeMatch")

	if err := that.matches.CompleteMatch(ctx, that.match); err != nil {
		log.Error("failed to complete match", "match_id", that.match.ID, "error", err)
	}
}

func winnerMark(status tictactoe.Status) string {
	switch status {
	case tictactoe.XWins:
		return entity.PlayerX
	case tictactoe.OWins:
		return entity.PlayerO
	default:
		return entity.PlayerTie
	}
}
