package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects the move strategy of the automated player.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a config or wire value onto a known tier.
func ParseDifficulty(value string) (Difficulty, error) {
	switch Difficulty(value) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}
}

// Rand is the random source the Easy and Medium tiers draw from. Injecting
// it keeps the distribution-shaping logic testable.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type systemRand struct{}

func (systemRand) Intn(n int) int { return rand.Intn(n) } //nolint: gosec // it's ok

func (systemRand) Float64() float64 { return rand.Float64() } //nolint: gosec // it's ok

const (
	// easyStrongBias is how often the Easy tier reaches for a strong square.
	easyStrongBias = 0.3
	// mediumBestBias is how often the Medium tier plays the optimal move.
	mediumBestBias = 0.7
)

// strongCells are the center and the four corners, the squares worth
// taking even when playing weakly.
var strongCells = [5]int{4, 0, 2, 6, 8}

// Selector picks moves for the automated player. It holds no game state;
// every call is a pure function of its inputs and the random source.
type Selector struct {
	rand Rand
}

// NewSelector creates a move selector. A nil source falls back to the
// process-wide generator.
func NewSelector(source Rand) *Selector {
	if source == nil {
		source = systemRand{}
	}

	return &Selector{rand: source}
}

// SelectMove returns the cell the automated player should take, or NoMove
// when the game already has a winner or the board is full. Selecting a move
// on a finished game is a no-op, not an error; malformed input is.
func (that *Selector) SelectMove(board Board, aiMark, humanMark string, difficulty Difficulty) (int, error) {
	if err := board.Validate(); err != nil {
		return NoMove, err
	}

	if err := validateMarks(aiMark, humanMark); err != nil {
		return NoMove, err
	}

	if outcome := detectOutcome(board); outcome.Winner != EmptyCell || outcome.IsDraw {
		return NoMove, nil
	}

	switch difficulty {
	case DifficultyEasy:
		return that.easyMove(board), nil
	case DifficultyMedium:
		return that.mediumMove(board, aiMark, humanMark), nil
	case DifficultyHard:
		return bestMove(board, aiMark, humanMark), nil
	default:
		return NoMove, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
}

// easyMove plays uniformly at random, except that 30% of the time it grabs
// a free strong square first. Weak, exploitable play that still takes good
// squares often enough to not look broken.
func (that *Selector) easyMove(board Board) int {
	if that.rand.Float64() < easyStrongBias {
		var strong []int
		for _, cell := range strongCells {
			if board[cell] == EmptyCell {
				strong = append(strong, cell)
			}
		}

		if len(strong) > 0 {
			return strong[that.rand.Intn(len(strong))]
		}
	}

	empty := board.EmptyCells()

	return empty[that.rand.Intn(len(empty))]
}

// mediumMove plays the optimal move 70% of the time. Otherwise it deviates
// to a deliberately suboptimal but safe move: a non-losing move other than
// the optimal one when such an alternative exists, any non-losing move when
// it does not, and any legal move when nothing is safe.
func (that *Selector) mediumMove(board Board, aiMark, humanMark string) int {
	best := bestMove(board, aiMark, humanMark)

	if that.rand.Float64() < mediumBestBias {
		return best
	}

	safe := nonLosingMoves(board, aiMark, humanMark)

	alternatives := make([]int, 0, len(safe))
	for _, cell := range safe {
		if cell != best {
			alternatives = append(alternatives, cell)
		}
	}

	if len(alternatives) == 0 {
		alternatives = safe
	}

	if len(alternatives) == 0 {
		empty := board.EmptyCells()
		return empty[that.rand.Intn(len(empty))]
	}

	return alternatives[that.rand.Intn(len(alternatives))]
}
