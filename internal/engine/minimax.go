package engine

import "math"

// Terminal scores are depth-scaled so the search prefers the fastest win
// and, when every line loses, the slowest loss.
const winScore = 10

// bestMove runs the exhaustive adversarial search and returns the optimal
// cell for aiMark. Ties between equally scored moves resolve to the first
// one encountered in ascending cell order. The caller guarantees the game
// is not over yet.
func bestMove(board Board, aiMark, humanMark string) int {
	best := NoMove
	bestScore := math.MinInt

	for _, cell := range board.EmptyCells() {
		next := board.clone()
		next[cell] = aiMark

		if score := minimax(next, aiMark, humanMark, 1, false); score > bestScore {
			bestScore = score
			best = cell
		}
	}

	return best
}

// minimax explores every legal continuation. On the automated player's turn
// it maximizes, on the opponent's turn it minimizes; the opponent is modeled
// as playing perfectly. Depth counts plies from the root.
func minimax(board Board, aiMark, humanMark string, depth int, aiTurn bool) int {
	switch outcome := detectOutcome(board); {
	case outcome.Winner == aiMark:
		return winScore - depth
	case outcome.Winner == humanMark:
		return depth - winScore
	case outcome.IsDraw:
		return 0
	}

	if aiTurn {
		best := math.MinInt
		for _, cell := range board.EmptyCells() {
			next := board.clone()
			next[cell] = aiMark

			if score := minimax(next, aiMark, humanMark, depth+1, false); score > best {
				best = score
			}
		}

		return best
	}

	worst := math.MaxInt
	for _, cell := range board.EmptyCells() {
		next := board.clone()
		next[cell] = humanMark

		if score := minimax(next, aiMark, humanMark, depth+1, true); score < worst {
			worst = score
		}
	}

	return worst
}

// nonLosingMoves collects moves that either win on the spot or leave the
// opponent without an immediate winning reply. A one-ply check only: a move
// that loses two plies out still counts as non-losing here.
func nonLosingMoves(board Board, aiMark, humanMark string) []int {
	var safe []int

	for _, cell := range board.EmptyCells() {
		next := board.clone()
		next[cell] = aiMark

		if detectOutcome(next).Winner == aiMark {
			safe = append(safe, cell)
			continue
		}

		if !hasImmediateWin(next, humanMark) {
			safe = append(safe, cell)
		}
	}

	return safe
}

// hasImmediateWin reports whether mark can complete a line in one move.
func hasImmediateWin(board Board, mark string) bool {
	for _, cell := range board.EmptyCells() {
		reply := board.clone()
		reply[cell] = mark

		if detectOutcome(reply).Winner == mark {
			return true
		}
	}

	return false
}
