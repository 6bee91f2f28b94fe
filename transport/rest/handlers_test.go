package rest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T) *engineHandlers {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return newEngineHandlers(logger, engine.NewSelector(nil))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	recorder := httptest.NewRecorder()
	handler(recorder, req)

	return recorder
}

func TestOutcomeHandler(t *testing.T) {
	t.Run("Reports the winner of a finished board", func(t *testing.T) {
		// Given: a board X already won
		handlers := newTestHandlers(t)
		request := outcomeRequest{Board: engine.Board{"X", "X", "X", "O", "O", "", "", "", ""}}

		// When: the outcome endpoint is called
		recorder := postJSON(t, handlers.outcomeHandler, "/engine/outcome", request)

		// Then: the winner is reported
		require.Equal(t, http.StatusOK, recorder.Code)

		var response outcomeResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "X", response.Winner)
		assert.False(t, response.IsDraw)
	})

	t.Run("Rejects a malformed board", func(t *testing.T) {
		// Given: a board with the wrong length
		handlers := newTestHandlers(t)
		request := outcomeRequest{Board: engine.Board{"X", "O"}}

		// When: the outcome endpoint is called
		recorder := postJSON(t, handlers.outcomeHandler, "/engine/outcome", request)

		// Then: the request fails with a client error
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Rejects non-POST requests", func(t *testing.T) {
		// When: the outcome endpoint is called with GET
		handlers := newTestHandlers(t)
		req := httptest.NewRequest(http.MethodGet, "/engine/outcome", nil)
		recorder := httptest.NewRecorder()
		handlers.outcomeHandler(recorder, req)

		// Then: the method is not allowed
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}

func TestSuggestHandler(t *testing.T) {
	t.Run("Suggests the winning cell on hard", func(t *testing.T) {
		// Given: X can win at cell 2
		handlers := newTestHandlers(t)
		request := suggestRequest{
			Board:      engine.Board{"X", "X", "", "O", "O", "", "", "", ""},
			AIMark:     "X",
			HumanMark:  "O",
			Difficulty: "hard",
		}

		// When: the suggest endpoint is called
		recorder := postJSON(t, handlers.suggestHandler, "/engine/suggest", request)

		// Then: the winning cell comes back
		require.Equal(t, http.StatusOK, recorder.Code)

		var response suggestResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.True(t, response.HasMove)
		assert.Equal(t, 2, response.Cell)
	})

	t.Run("Reports no move on a finished game", func(t *testing.T) {
		// Given: a board with a winner already
		handlers := newTestHandlers(t)
		request := suggestRequest{
			Board:      engine.Board{"X", "X", "X", "O", "O", "", "", "", ""},
			AIMark:     "O",
			HumanMark:  "X",
			Difficulty: "hard",
		}

		// When: the suggest endpoint is called
		recorder := postJSON(t, handlers.suggestHandler, "/engine/suggest", request)

		// Then: there is no move but the request succeeds
		require.Equal(t, http.StatusOK, recorder.Code)

		var response suggestResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.False(t, response.HasMove)
		assert.Equal(t, engine.NoMove, response.Cell)
	})

	t.Run("Rejects equal marks", func(t *testing.T) {
		// Given: both sides holding X
		handlers := newTestHandlers(t)
		request := suggestRequest{
			Board:      make(engine.Board, engine.BoardSize),
			AIMark:     "X",
			HumanMark:  "X",
			Difficulty: "hard",
		}

		// When: the suggest endpoint is called
		recorder := postJSON(t, handlers.suggestHandler, "/engine/suggest", request)

		// Then: the request fails with a client error
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Rejects an unknown difficulty", func(t *testing.T) {
		// Given: a made-up difficulty tier
		handlers := newTestHandlers(t)
		request := suggestRequest{
			Board:      make(engine.Board, engine.BoardSize),
			AIMark:     "X",
			HumanMark:  "O",
			Difficulty: "nightmare",
		}

		// When: the suggest endpoint is called
		recorder := postJSON(t, handlers.suggestHandler, "/engine/suggest", request)

		// Then: the request fails with a client error
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
