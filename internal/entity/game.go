package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

var ErrUnknownMatchStatus = errors.New("unknown match status")

// Match - the persisted record of one game between the human and the agent.
type Match struct {
	ID         string    `json:"id"`
	Board      [9]string `json:"board"`
	Winner     string    `json:"winner"`
	Status     string    `json:"status"`
	HumanMark  string    `json:"human_mark"`
	AgentMark  string    `json:"agent_mark"`
	Moves      []Move    `json:"moves,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewMatch(id, humanMark string, startedAt time.Time) (*Match, error) {
	agentMark, err := OppositeMark(humanMark)
	if err != nil {
		return nil, err
	}

	return &Match{
		ID:        id,
		Status:    StatusOngoing,
		HumanMark: humanMark,
		AgentMark: agentMark,
		StartedAt: startedAt,
	}, nil
}

func OppositeMark(mark string) (string, error) {
	switch mark {
	case PlayerX:
		return PlayerO, nil
	case PlayerO:
		return PlayerX, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}
}

// RecordMove - appends a move and mirrors it on the flattened board.
func (that *Match) RecordMove(mark string, row, col int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	cell := row*3 + col
	if row < 0 || row > 2 || col < 0 || col > 2 || that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrIllegalMove, row, col)
	}

	that.Board[cell] = mark
	that.Moves = append(that.Moves, Move{
		Mark:  mark,
		Row:   row,
		Col:   col,
		Agent: mark == that.AgentMark,
	})

	return nil
}

// Finish - closes the match. winner is PlayerX, PlayerO or PlayerTie.
func (that *Match) Finish(winner string, finishedAt time.Time) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	switch winner {
	case PlayerX, PlayerO, PlayerTie:
	default:
		return fmt.Errorf("%w: winner %q", apperror.ErrInvalidMark, winner)
	}

	that.Winner = winner
	that.Status = StatusFinished
	that.FinishedAt = finishedAt

	return nil
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMatchStatus, that.Status)
	}
}

// HumanWon - reports whether the human took the match; ties are not wins.
func (that *Match) HumanWon() bool {
	return that.IsFinished() && that.Winner == that.HumanMark
}
