package tictactoe

import (
	"fmt"
	"io"
	"strings"
)

const Size = 3

type Cell uint8

const (
	Empty Cell = iota
	CellX
	CellO
)

// String - returns the glyph used when rendering the cell.
func (that Cell) String() string {
	switch that {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return "."
	}
}

type Player uint8

const (
	PlayerX Player = iota
	PlayerO
)

func (that Player) String() string {
	if that == PlayerO {
		return "O"
	}
	return "X"
}

// Cell - returns the mark the player leaves on the board.
func (that Player) Cell() Cell {
	if that == PlayerO {
		return CellO
	}
	return CellX
}

func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// ParsePlayer - converts "X"/"O" (any case) into a Player.
func ParsePlayer(mark string) (Player, bool) {
	switch strings.ToUpper(strings.TrimSpace(mark)) {
	case "X":
		return PlayerX, true
	case "O":
		return PlayerO, true
	default:
		return PlayerX, false
	}
}

type Status uint8

const (
	InProgress Status = iota
	XWins
	OWins
	Draw
)

func (that Status) String() string {
	switch that {
	case XWins:
		return "x_wins"
	case OWins:
		return "o_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board - a single 3x3 position. The grid is an array, so copies never share cells.
type Board struct {
	cells [Size][Size]Cell
	moves int
}

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) Moves() int {
	return that.moves
}

// At - returns the cell at row, col. Coordinates outside the grid read as Empty.
func (that *Board) At(row, col int) Cell {
	if !inRange(row, col) {
		return Empty
	}
	return that.cells[row][col]
}

// Turn - X moves on even move counts, O on odd ones.
func (that *Board) Turn() Player {
	if that.moves%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

func (that *Board) IsEmpty() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell != Empty {
				return false
			}
		}
	}
	return true
}

func (that *Board) isFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// Winner - reports the owner of the first uniform line, scanning rows, then
// columns, then the main diagonal, then the anti-diagonal.
func (that *Board) Winner() (Player, bool) {
	for i := 0; i < Size; i++ {
		if player, ok := that.lineOwner(func(k int) Cell { return that.cells[i][k] }); ok {
			return player, true
		}
	}

	for i := 0; i < Size; i++ {
		if player, ok := that.lineOwner(func(k int) Cell { return that.cells[k][i] }); ok {
			return player, true
		}
	}

	if player, ok := that.lineOwner(func(k int) Cell { return that.cells[k][k] }); ok {
		return player, true
	}

	return that.lineOwner(func(k int) Cell { return that.cells[k][Size-1-k] })
}

func (that *Board) lineOwner(at func(k int) Cell) (Player, bool) {
	for _, player := range []Player{PlayerX, PlayerO} {
		uniform := true
		for k := 0; k < Size; k++ {
			if at(k) != player.Cell() {
				uniform = false
				break
			}
		}
		if uniform {
			return player, true
		}
	}
	return PlayerX, false
}

// HasEnded - true once the grid is full or somebody owns a line.
func (that *Board) HasEnded() bool {
	if that.isFull() {
		return true
	}
	_, ok := that.Winner()
	return ok
}

func (that *Board) Status() Status {
	if winner, ok := that.Winner(); ok {
		if winner == PlayerX {
			return XWins
		}
		return OWins
	}
	if that.isFull() {
		return Draw
	}
	return InProgress
}

// Play - places the mark of the player to move. It is the only mutating
// operation; an out of range or occupied target leaves the board untouched.
func (that *Board) Play(row, col int) bool {
	if !inRange(row, col) || that.cells[row][col] != Empty {
		return false
	}

	that.cells[row][col] = that.Turn().Cell()
	that.moves++

	return true
}

func (that *Board) Copy() *Board {
	clone := *that
	return &clone
}

// LegalMoves - empty cells in row-major order.
func (that *Board) LegalMoves() []Move {
	moves := make([]Move, 0, Size*Size-that.moves)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that.cells[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

// Cells - the grid flattened row-major, "" for empty cells.
func (that *Board) Cells() [Size * Size]string {
	var flat [Size * Size]string
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if cell := that.cells[row][col]; cell != Empty {
				flat[row*Size+col] = cell.String()
			}
		}
	}
	return flat
}

// Display - writes one line per row, one glyph per cell.
func (that *Board) Display(w io.Writer) error {
	if _, err := io.WriteString(w, that.String()); err != nil {
		return fmt.Errorf("failed to display board: %w", err)
	}
	return nil
}

func (that *Board) String() string {
	var sb strings.Builder
	sb.Grow(Size * (Size + 1))
	for _, row := range that.cells {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func inRange(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
