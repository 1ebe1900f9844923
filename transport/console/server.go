package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var (
	ErrQuit        = errors.New("player quit")
	errInputClosed = errors.New("input closed")
)

type uGame interface {
	NewGame(ctx context.Context, human tictactoe.Player) (*entity.Match, error)

	Board() *tictactoe.Board
	IsHumanTurn() bool
	HasEnded() bool
	Status() tictactoe.Status

	HumanTurn(ctx context.Context, row, col int) error
	AgentTurn(ctx context.Context) (tictactoe.Move, error)
	Hint() (tictactoe.Result, error)
}

// Server - interactive text driver: one human against the agent over a reader/writer pair.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	out   io.Writer
	lines <-chan string

	handlers map[string]func(ctx context.Context) error
}

// New - starts reading lines from in right away; the reader goroutine ends when in is exhausted.
func New(logger *slog.Logger, uGame uGame, in io.Reader, out io.Writer) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		uGame:  uGame,

		out:   out,
		lines: scanLines(in),

		handlers: make(map[string]func(context.Context) error),
	}

	server.handlers["hint"] = server.handleHint
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit

	return server
}

// Start - plays games until the input ends, the player declines a rematch or ctx is done.
func (that *Server) Start(ctx context.Context, human tictactoe.Player) error {
	for {
		if err := that.PlayGame(ctx, human); err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}

		again, err := that.askRematch(ctx)
		if err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}

		if !again {
			return nil
		}
	}
}

// PlayGame - runs one game to its end.
func (that *Server) PlayGame(ctx context.Context, human tictactoe.Player) error {
	log := that.logger.With("method", "PlayGame")

	if _, err := that.uGame.NewGame(ctx, human); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	for !that.uGame.HasEnded() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("game interrupted: %w", err)
		}

		board := that.uGame.Board()
		if err := board.Display(that.out); err != nil {
			return err
		}
		that.printf("%s turns:\n", board.Turn())

		if that.uGame.IsHumanTurn() {
			if err := that.humanTurn(ctx); err != nil {
				return err
			}
			continue
		}

		that.printf("agent is thinking...\n")

		move, err := that.uGame.AgentTurn(ctx)
		if err != nil {
			return fmt.Errorf("agent turn failed: %w", err)
		}

		log.Debug("agent moved", "row", move.Row, "col", move.Col)
	}

	that.printResult()

	return that.uGame.Board().Display(that.out)
}

func (that *Server) humanTurn(ctx context.Context) error {
	for {
		row, err := that.readCoordinate(ctx, "row")
		if err != nil {
			return err
		}

		col, err := that.readCoordinate(ctx, "col")
		if err != nil {
			return err
		}

		err = that.uGame.HumanTurn(ctx, row, col)
		if err == nil {
			return nil
		}

		if !errors.Is(err, apperror.ErrIllegalMove) {
			return fmt.Errorf("human turn failed: %w", err)
		}

		that.printf("cell (%d,%d) is not available, try again\n", row, col)
	}
}

// readCoordinate - prompts until a number or a command is entered.
func (that *Server) readCoordinate(ctx context.Context, name string) (int, error) {
	for {
		that.printf("select %s (between 0-2): ", name)

		line, err := that.readLine(ctx)
		if err != nil {
			return 0, err
		}

		if handler, ok := that.handlers[strings.ToLower(line)]; ok {
			if err = handler(ctx); err != nil {
				return 0, err
			}
			continue
		}

		value, err := parseCoordinate(line)
		if err != nil {
			that.printf("%v\n", err)
			continue
		}

		return value, nil
	}
}

func (that *Server) askRematch(ctx context.Context) (bool, error) {
	for {
		that.printf("play again? (y/n): ")

		line, err := that.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "quit":
			return false, ErrQuit
		}
	}
}

func (that *Server) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("input interrupted: %w", ctx.Err())
	case line, ok := <-that.lines:
		if !ok {
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

func (that *Server) handleHint(_ context.Context) error {
	result, err := that.uGame.Hint()
	if err != nil {
		return fmt.Errorf("failed to compute hint: %w", err)
	}

	that.printf("hint: play (%d,%d), outcome with best play: %s\n", result.Row, result.Col, describeValue(result.Value))

	return nil
}

func (that *Server) handleHelp(_ context.Context) error {
	that.printf("enter a number between 0 and 2, or one of: hint, help, quit\n")
	return nil
}

func (that *Server) handleQuit(_ context.Context) error {
	return ErrQuit
}

func (that *Server) printResult() {
	switch that.uGame.Status() {
	case tictactoe.XWins:
		that.printf("%s has won the game\n", tictactoe.PlayerX)
	case tictactoe.OWins:
		that.printf("%s has won the game\n", tictactoe.PlayerO)
	default:
		that.printf("the game is a draw\n")
	}
}

// PrintScore - writes the stored outcome counters.
func (that *Server) PrintScore(score entity.Score) {
	that.printf("score: X %d, O %d, draws %d\n", score.X, score.O, score.Draw)
}

func (that *Server) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func parseCoordinate(line string) (int, error) {
	value, err := strconv.Atoi(line)
	if err != nil || value < 0 || value >= tictactoe.Size {
		return 0, fmt.Errorf("%w: %q is not a number between 0 and 2", apperror.ErrInvalidInput, line)
	}
	return value, nil
}

func describeValue(value int) string {
	switch {
	case value > 0:
		return "X wins"
	case value < 0:
		return "O wins"
	default:
		return "draw"
	}
}

func scanLines(in io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return lines
}
