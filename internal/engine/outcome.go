package engine

// Outcome reports how a board stands: a winner, a draw, or neither while
// the game is still in progress. Winner and IsDraw are never both set.
type Outcome struct {
	Winner string `json:"winner"`
	IsDraw bool   `json:"is_draw"`
}

// DetectOutcome scans the 8 fixed lines for a completed triple and falls
// back to a fullness check for the draw. It is a pure function of the board.
func DetectOutcome(board Board) (Outcome, error) {
	if err := board.Validate(); err != nil {
		return Outcome{}, err
	}

	return detectOutcome(board), nil
}

// detectOutcome assumes a validated board; internal callers run it on
// boards derived from an already validated one.
func detectOutcome(board Board) Outcome {
	for _, line := range Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Winner: a}
		}
	}

	if board.IsFull() {
		return Outcome{IsDraw: true}
	}

	return Outcome{}
}
