package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOutcome(t *testing.T) {
	t.Run("Winner on a row", func(t *testing.T) {
		// Given: player X completed the top row
		board := Board{PlayerX, PlayerX, PlayerX, PlayerO, PlayerO, "", "", "", ""}

		// When: the outcome is detected
		outcome, err := DetectOutcome(board)

		// Then: X is the winner and the board is not a draw
		require.NoError(t, err)
		assert.Equal(t, PlayerX, outcome.Winner)
		assert.False(t, outcome.IsDraw)
	})

	t.Run("Winner on a column", func(t *testing.T) {
		// Given: player O completed the middle column
		board := Board{PlayerX, PlayerO, "", PlayerX, PlayerO, "", "", PlayerO, ""}

		// When: the outcome is detected
		outcome, err := DetectOutcome(board)

		// Then: O is the winner
		require.NoError(t, err)
		assert.Equal(t, PlayerO, outcome.Winner)
		assert.False(t, outcome.IsDraw)
	})

	t.Run("Winner on a diagonal", func(t *testing.T) {
		// Given: player X completed the main diagonal
		board := Board{PlayerX, PlayerO, "", PlayerO, PlayerX, "", "", "", PlayerX}

		// When: the outcome is detected
		outcome, err := DetectOutcome(board)

		// Then: X is the winner
		require.NoError(t, err)
		assert.Equal(t, PlayerX, outcome.Winner)
	})

	t.Run("Ongoing game", func(t *testing.T) {
		// Given: a board with empty cells and no completed line
		board := Board{PlayerX, PlayerO, PlayerX, "", PlayerO, "", PlayerX, "", ""}

		// When: the outcome is detected
		outcome, err := DetectOutcome(board)

		// Then: there is no winner and no draw yet
		require.NoError(t, err)
		assert.Empty(t, outcome.Winner)
		assert.False(t, outcome.IsDraw)
	})

	t.Run("Draw on a full board", func(t *testing.T) {
		// Given: a full board without a completed line
		board := Board{PlayerO, PlayerX, PlayerO, PlayerO, PlayerX, PlayerX, PlayerX, PlayerO, PlayerO}

		// When: the outcome is detected
		outcome, err := DetectOutcome(board)

		// Then: the game is a draw
		require.NoError(t, err)
		assert.Empty(t, outcome.Winner)
		assert.True(t, outcome.IsDraw)
	})

	t.Run("Winner takes precedence over draw on a full board", func(t *testing.T) {
		// Given: a full board where X holds the bottom row
		board := Board{PlayerO, PlayerX, PlayerO, PlayerO, PlayerX, PlayerO, PlayerX, PlayerX, PlayerX}

		// When: the outcome is detected
		outcome, err := DetectOutcome(board)

		// Then: X wins and the board is not reported as a draw
		require.NoError(t, err)
		assert.Equal(t, PlayerX, outcome.Winner)
		assert.False(t, outcome.IsDraw)
	})

	t.Run("First line in enumeration order wins on a constructed double win", func(t *testing.T) {
		// Given: an illegal but well-formed board with two completed lines
		board := Board{PlayerX, PlayerX, PlayerX, PlayerO, PlayerO, PlayerO, "", "", ""}

		// When: the outcome is detected
		outcome, err := DetectOutcome(board)

		// Then: the row of X is found first, per the fixed line order
		require.NoError(t, err)
		assert.Equal(t, PlayerX, outcome.Winner)
	})

	t.Run("Rejects a board of the wrong length", func(t *testing.T) {
		// Given: a board with 8 cells
		board := Board{"", "", "", "", "", "", "", ""}

		// When: the outcome is detected
		_, err := DetectOutcome(board)

		// Then: the board is rejected
		require.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("Rejects a board with an unknown mark", func(t *testing.T) {
		// Given: a board holding a symbol outside X/O
		board := Board{"Z", "", "", "", "", "", "", "", ""}

		// When: the outcome is detected
		_, err := DetectOutcome(board)

		// Then: the board is rejected
		require.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("Idempotent on the same board", func(t *testing.T) {
		// Given: any board
		board := Board{PlayerX, PlayerO, "", "", PlayerX, "", "", "", PlayerO}

		// When: the outcome is detected twice
		first, err := DetectOutcome(board)
		require.NoError(t, err)
		second, err := DetectOutcome(board)
		require.NoError(t, err)

		// Then: both calls agree
		assert.Equal(t, first, second)
	})
}
