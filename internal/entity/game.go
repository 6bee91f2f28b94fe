package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = engine.PlayerX
	PlayerO   = engine.PlayerO
	PlayerTie = "-"

	EmptyCell = engine.EmptyCell
)

const (
	PrivateType = "private"
	WithBotType = "bot"
)

// SeriesTarget is how many round wins take a best-of-5 series.
const SeriesTarget = 3

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownGameStatus = errors.New("unknown game status")
)

// Series keeps the best-of-5 bookkeeping across rounds of one game session.
type Series struct {
	Target int    `json:"target"`
	Round  int    `json:"round"`
	WinsX  int    `json:"wins_x"`
	WinsO  int    `json:"wins_o"`
	Ties   int    `json:"ties"`
	Winner string `json:"winner,omitempty"`
}

// IsDecided reports whether one side already took the series.
func (that *Series) IsDecided() bool {
	return that.Winner != ""
}

// Record tallies a finished round. winner is a mark or PlayerTie.
func (that *Series) Record(winner string) {
	switch winner {
	case PlayerX:
		that.WinsX++
	case PlayerO:
		that.WinsO++
	default:
		that.Ties++
	}

	switch {
	case that.WinsX >= that.Target:
		that.Winner = PlayerX
	case that.WinsO >= that.Target:
		that.Winner = PlayerO
	}
}

type Game struct {
	ID         string            `json:"id"`
	Board      engine.Board      `json:"board"`
	Winner     string            `json:"winner"`
	Status     string            `json:"status"`
	Turn       string            `json:"player_turn"`
	Players    []*Player         `json:"players,omitempty"`
	Type       string            `json:"type,omitempty"`
	Difficulty engine.Difficulty `json:"difficulty,omitempty"`
	Series     *Series           `json:"series,omitempty"`
}

func NewGame(id, gameType string, difficulty engine.Difficulty) *Game {
	return &Game{
		ID:         id,
		Board:      make(engine.Board, engine.BoardSize),
		Turn:       PlayerX,
		Status:     StatusWaiting,
		Type:       gameType,
		Difficulty: difficulty,
		Series:     &Series{Target: SeriesTarget, Round: 1},
	}
}

// DetermineGameResult returns the winning mark, PlayerTie on a draw, or an
// empty string while the round is still in progress.
func (that *Game) DetermineGameResult() string {
	outcome, err := engine.DetectOutcome(that.Board)
	if err != nil {
		// a stored game only holds boards this entity produced
		return ""
	}

	if outcome.Winner != EmptyCell {
		return outcome.Winner
	}

	if outcome.IsDraw {
		return PlayerTie
	}

	return ""
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins the round
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// round continues
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(playerMark string, cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.Turn = engine.ToggleMark(playerMark)

	that.UpdateGameState()

	return nil
}

// RecordRoundResult feeds a finished round into the series tally.
func (that *Game) RecordRoundResult() {
	if !that.IsFinished() || that.Series == nil {
		return
	}

	that.Series.Record(that.Winner)
}

// StartNextRound resets the board for the next round of an undecided
// series. X opens every round.
func (that *Game) StartNextRound() error {
	if that.Series == nil || that.Series.IsDecided() {
		return apperror.ErrSeriesDecided
	}

	that.Board = make(engine.Board, engine.BoardSize)
	that.Winner = ""
	that.Turn = PlayerX
	that.Status = StatusOngoing
	that.Series.Round++

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
