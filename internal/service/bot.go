package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	selector *engine.Selector
}

func NewBotService(selector *engine.Selector) BotService {
	return &botService{
		selector: selector,
	}
}

// MakeTurn lets the automated player move at the game's difficulty tier.
func (that *botService) MakeTurn(game *entity.Game) error {
	var botPlayer *entity.Player
	for _, player := range game.Players {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return ErrBotNotFound
	}

	difficulty := game.Difficulty
	if difficulty == "" {
		difficulty = engine.DifficultyHard
	}

	humanMark := engine.ToggleMark(botPlayer.Mark)

	chosenCell, err := that.selector.SelectMove(game.Board, botPlayer.Mark, humanMark, difficulty)
	if err != nil {
		return fmt.Errorf("failed to select bot move: %w", err)
	}

	if chosenCell == engine.NoMove {
		return ErrNoAvailableMoves
	}

	if err = game.MakeTurn(botPlayer.Mark, chosenCell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
