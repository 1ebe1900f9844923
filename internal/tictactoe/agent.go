package tictactoe

// Sentinels sit outside the {-1, 0, 1} value range so any legal move replaces them.
const (
	minSentinel = -100
	maxSentinel = 100
)

// Result - game-theoretic value from X's point of view plus the move producing it.
// Row and Col are -1 when the position is terminal.
type Result struct {
	Value int `json:"value"`
	Row   int `json:"row"`
	Col   int `json:"col"`
}

// Agent - minimax player bound to a live board.
type Agent struct {
	board  *Board
	player Player
}

func NewAgent(board *Board, player Player) *Agent {
	return &Agent{
		board:  board,
		player: player,
	}
}

func (that *Agent) Player() Player {
	return that.player
}

// Play - returns the move the agent wants on the bound board.
// An empty board is answered with (0,0) without searching.
func (that *Agent) Play() (int, int) {
	if that.board.IsEmpty() {
		return 0, 0
	}

	result := that.Search()

	return result.Row, result.Col
}

// Search - full minimax on the bound board, without the opening shortcut.
func (that *Agent) Search() Result {
	if that.player == PlayerX {
		return Maximize(that.board)
	}
	return Minimize(that.board)
}

// Maximize - best outcome X can force when X is to move on board.
func Maximize(board *Board) Result {
	if board.HasEnded() {
		return terminal(board)
	}

	best := Result{Value: minSentinel, Row: -1, Col: -1}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			next := board.Copy()
			if !next.Play(row, col) {
				continue
			}
			if value := Minimize(next).Value; value > best.Value {
				best = Result{Value: value, Row: row, Col: col}
			}
		}
	}

	return best
}

// Minimize - best outcome O can force when O is to move on board.
func Minimize(board *Board) Result {
	if board.HasEnded() {
		return terminal(board)
	}

	best := Result{Value: maxSentinel, Row: -1, Col: -1}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			next := board.Copy()
			if !next.Play(row, col) {
				continue
			}
			if value := Maximize(next).Value; value < best.Value {
				best = Result{Value: value, Row: row, Col: col}
			}
		}
	}

	return best
}

func terminal(board *Board) Result {
	winner, ok := board.Winner()
	switch {
	case !ok:
		return Result{Value: 0, Row: -1, Col: -1}
	case winner == PlayerX:
		return Result{Value: 1, Row: -1, Col: -1}
	default:
		return Result{Value: -1, Row: -1, Col: -1}
	}
}
