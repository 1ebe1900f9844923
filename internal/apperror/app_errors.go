package apperror

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidMark      = errors.New("invalid player mark")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoAvailableMoves = errors.New("no available moves")
)
