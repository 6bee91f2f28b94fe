package engine

import (
	"errors"
	"fmt"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	// BoardSize is the only board length the engine accepts.
	BoardSize = 9

	// NoMove is returned by SelectMove when the game is already over.
	NoMove = -1
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrSameMarks    = errors.New("marks must differ")
)

// Lines are the 8 winning combinations: rows, then columns, then diagonals.
// When a constructed board holds two completed lines at once, the first one
// in this order decides the winner.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid in row-major order, cells indexed 0..8.
type Board []string

// Validate rejects malformed boards before any computation touches them.
func (that Board) Validate() error {
	if len(that) != BoardSize {
		return fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, BoardSize, len(that))
	}

	for i, cell := range that {
		if cell != EmptyCell && cell != PlayerX && cell != PlayerO {
			return fmt.Errorf("%w: cell %d holds %q", ErrInvalidBoard, i, cell)
		}
	}

	return nil
}

// EmptyCells returns the indexes of free cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// clone copies the board so every search branch owns its own snapshot.
func (that Board) clone() Board {
	next := make(Board, len(that))
	copy(next, that)

	return next
}

func validateMarks(aiMark, humanMark string) error {
	for _, mark := range []string{aiMark, humanMark} {
		if mark != PlayerX && mark != PlayerO {
			return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
		}
	}

	if aiMark == humanMark {
		return fmt.Errorf("%w: both players hold %q", ErrSameMarks, aiMark)
	}

	return nil
}

// ToggleMark returns the opposing mark.
func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
