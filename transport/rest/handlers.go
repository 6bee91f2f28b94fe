package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
)

// engineHandlers expose the stateless core contracts over HTTP: outcome
// detection and move suggestion for a caller that owns its own board.
type engineHandlers struct {
	logger   *slog.Logger
	selector *engine.Selector
}

func newEngineHandlers(logger *slog.Logger, selector *engine.Selector) *engineHandlers {
	return &engineHandlers{
		logger:   logger,
		selector: selector,
	}
}

type outcomeRequest struct {
	Board engine.Board `json:"board"`
}

type outcomeResponse struct {
	Winner string `json:"winner"`
	IsDraw bool   `json:"is_draw"`
}

type suggestRequest struct {
	Board      engine.Board `json:"board"`
	AIMark     string       `json:"ai_mark"`
	HumanMark  string       `json:"human_mark"`
	Difficulty string       `json:"difficulty"`
}

type suggestResponse struct {
	Cell    int  `json:"cell"`
	HasMove bool `json:"has_move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *engineHandlers) outcomeHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "outcomeHandler")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(log, w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	outcome, err := engine.DetectOutcome(request.Board)
	if err != nil {
		writeJSON(log, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(log, w, http.StatusOK, outcomeResponse{Winner: outcome.Winner, IsDraw: outcome.IsDraw})
}

func (that *engineHandlers) suggestHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "suggestHandler")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(log, w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	difficulty, err := engine.ParseDifficulty(request.Difficulty)
	if err != nil {
		writeJSON(log, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cell, err := that.selector.SelectMove(request.Board, request.AIMark, request.HumanMark, difficulty)
	if err != nil {
		status := http.StatusInternalServerError
		if isInvalidInput(err) {
			status = http.StatusBadRequest
		}

		writeJSON(log, w, status, errorResponse{Error: err.Error()})

		return
	}

	writeJSON(log, w, http.StatusOK, suggestResponse{Cell: cell, HasMove: cell != engine.NoMove})
}

func isInvalidInput(err error) bool {
	return errors.Is(err, engine.ErrInvalidBoard) ||
		errors.Is(err, engine.ErrInvalidMark) ||
		errors.Is(err, engine.ErrSameMarks) ||
		errors.Is(err, engine.ErrUnknownDifficulty)
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}
