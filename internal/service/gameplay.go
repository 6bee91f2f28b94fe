package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrRoundNotFinished = errors.New("round is not finished yet")

type GamePlayService interface {
	GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string, difficulty engine.Difficulty) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGameState(ctx context.Context, player *entity.Player) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	NextRound(ctx context.Context, playerID string) (*entity.Game, error)

	CleanupGame(ctx context.Context, game *entity.Game)
}

type archiveRepo interface {
	SaveSeries(ctx context.Context, game *entity.Game) error
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
	archiveRepo   archiveRepo
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService, archiveRepo archiveRepo) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
		archiveRepo:   archiveRepo,
	}
}

// MakeTurn applies the human move, lets the bot answer in bot games, and
// folds a finished round into the series.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, fmt.Errorf("game is not playable: %w", err)
	}

	if err = game.MakeTurn(player.Mark, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if !game.IsFinished() && game.IsWithBot() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if game.IsFinished() {
		if err = that.finishRound(ctx, game); err != nil {
			return nil, err
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// finishRound tallies the round and archives the series once it is decided.
func (that *gamePlayService) finishRound(ctx context.Context, game *entity.Game) error {
	game.RecordRoundResult()

	if game.Series == nil || !game.Series.IsDecided() {
		return nil
	}

	if err := that.archiveRepo.SaveSeries(ctx, game); err != nil {
		return fmt.Errorf("failed to archive series: %w", err)
	}

	return nil
}

// NextRound starts the next round of an undecided series after a finished one.
func (that *gamePlayService) NextRound(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if !game.IsFinished() {
		return game, ErrRoundNotFinished
	}

	if err = game.StartNextRound(); err != nil {
		return game, fmt.Errorf("failed to start next round: %w", err)
	}

	// when the bot drew X it opens the round
	if game.IsWithBot() {
		if err = that.makeBotOpening(game); err != nil {
			return nil, err
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string, difficulty engine.Difficulty) (*entity.Game, error) {
	if player.GameID != "" {
		game, err := that.gameService.GetGameByID(ctx, player.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}

		return game, nil
	}

	game, err := that.createGame(ctx, player, gameType, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) createGame(ctx context.Context, player *entity.Player, gameType string, difficulty engine.Difficulty) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, player, gameType, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsWithBot() {
		if err = that.seatBot(ctx, game, player); err != nil {
			return nil, err
		}
	}

	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return game, nil
}

// seatBot adds the automated player, deals random marks and starts the game
// immediately; a bot never keeps anyone waiting.
func (that *gamePlayService) seatBot(ctx context.Context, game *entity.Game, player *entity.Player) error {
	humanMark, botMark := game.GetRandomMarks()

	player.Mark = humanMark

	botPlayer := &entity.Player{
		ID:     "bot:" + game.ID,
		Mark:   botMark,
		GameID: game.ID,
		Bot:    true,
	}

	game.Players = append(game.Players, botPlayer)
	game.Status = entity.StatusOngoing

	if err := that.makeBotOpening(game); err != nil {
		return err
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// makeBotOpening lets the bot move first when it holds X.
func (that *gamePlayService) makeBotOpening(game *entity.Game) error {
	for _, player := range game.Players {
		if player.IsBot() && player.Mark == game.Turn {
			if err := that.botService.MakeTurn(game); err != nil {
				return fmt.Errorf("bot failed to open the round: %w", err)
			}
		}
	}

	return nil
}

func (that *gamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == game.ID {
		return game, nil
	}

	if len(game.Players) >= 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyExists, gameID)
	}

	player.GameID = game.ID
	player.Mark = entity.PlayerO
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	game.Status = entity.StatusOngoing
	game.Players = append(game.Players, player)
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) GetGameState(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// CleanupGame drops a finished session; players keep their IDs but lose the
// game binding.
func (that *gamePlayService) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "CleanupGame")

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		player.GameID = ""
		player.Mark = ""
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			log.Error("failed to unbind player from game", "player", player.ID, "error", err)
		}
	}

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "game", game.ID, "error", err)
	}
}
