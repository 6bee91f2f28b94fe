package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSomeError = errors.New("some error")

type fakePlayerService struct {
	players map[string]*entity.Player
	created int
}

func newFakePlayerService() *fakePlayerService {
	return &fakePlayerService{players: make(map[string]*entity.Player)}
}

func (that *fakePlayerService) CreatePlayer(_ context.Context) (*entity.Player, error) {
	that.created++
	player := &entity.Player{ID: "generated"}
	that.players[player.ID] = player

	return player, nil
}

func (that *fakePlayerService) GetPlayerByID(_ context.Context, id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return nil, errSomeError
	}

	return player, nil
}

type fakeGamePlayService struct {
	game       *entity.Game
	difficulty engine.Difficulty
	cleanedUp  bool
}

func (that *fakeGamePlayService) GetOrCreateGame(_ context.Context, _ *entity.Player, _ string, difficulty engine.Difficulty) (*entity.Game, error) {
	that.difficulty = difficulty
	return that.game, nil
}

func (that *fakeGamePlayService) JoinGameByID(_ context.Context, _, _ string) (*entity.Game, error) {
	return that.game, nil
}

func (that *fakeGamePlayService) GetGameState(_ context.Context, _ *entity.Player) (*entity.Game, error) {
	return that.game, nil
}

func (that *fakeGamePlayService) MakeTurn(_ context.Context, _ string, _ int) (*entity.Game, error) {
	return that.game, nil
}

func (that *fakeGamePlayService) NextRound(_ context.Context, _ string) (*entity.Game, error) {
	return that.game, nil
}

func (that *fakeGamePlayService) CleanupGame(_ context.Context, _ *entity.Game) {
	that.cleanedUp = true
}

func newUseCaseFixture(game *entity.Game) (GameUseCase, *fakePlayerService, *fakeGamePlayService) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	playerService := newFakePlayerService()
	gamePlayService := &fakeGamePlayService{game: game}

	return NewGameUseCase(logger, playerService, gamePlayService, engine.DifficultyHard), playerService, gamePlayService
}

func TestGameUseCase_GetOrCreatePlayer(t *testing.T) {
	t.Run("Creates a new player when playerID is empty", func(t *testing.T) {
		// Given: a use case over an empty player store
		useCaseInstance, playerService, _ := newUseCaseFixture(nil)

		// When: calling GetOrCreatePlayer with an empty playerID
		player, err := useCaseInstance.GetOrCreatePlayer(context.Background(), "")

		// Then: a new player is created
		require.NoError(t, err)
		assert.NotEmpty(t, player.ID)
		assert.Equal(t, 1, playerService.created)
	})

	t.Run("Returns the existing player when playerID is known", func(t *testing.T) {
		// Given: a stored player
		useCaseInstance, playerService, _ := newUseCaseFixture(nil)
		existing := &entity.Player{ID: "player123"}
		playerService.players[existing.ID] = existing

		// When: calling GetOrCreatePlayer with the known ID
		player, err := useCaseInstance.GetOrCreatePlayer(context.Background(), "player123")

		// Then: the existing player comes back
		require.NoError(t, err)
		assert.Equal(t, existing, player)
	})

	t.Run("Returns an error when the player lookup fails", func(t *testing.T) {
		// Given: a use case over an empty player store
		useCaseInstance, _, _ := newUseCaseFixture(nil)

		// When: calling GetOrCreatePlayer with an unknown ID
		_, err := useCaseInstance.GetOrCreatePlayer(context.Background(), "missing")

		// Then: the lookup error propagates
		require.ErrorIs(t, err, errSomeError)
	})
}

func TestGameUseCase_GetOrCreateGame(t *testing.T) {
	t.Run("Parses the requested difficulty", func(t *testing.T) {
		// Given: a registered player
		game := entity.NewGame("game1", entity.WithBotType, engine.DifficultyEasy)
		useCaseInstance, playerService, gamePlayService := newUseCaseFixture(game)
		playerService.players["p1"] = &entity.Player{ID: "p1"}

		// When: requesting a game on easy
		_, err := useCaseInstance.GetOrCreateGame(context.Background(), "p1", entity.WithBotType, "easy")

		// Then: the parsed tier reaches the gameplay service
		require.NoError(t, err)
		assert.Equal(t, engine.DifficultyEasy, gamePlayService.difficulty)
	})

	t.Run("Falls back to the default difficulty", func(t *testing.T) {
		// Given: a registered player
		game := entity.NewGame("game1", entity.WithBotType, engine.DifficultyHard)
		useCaseInstance, playerService, gamePlayService := newUseCaseFixture(game)
		playerService.players["p1"] = &entity.Player{ID: "p1"}

		// When: requesting a game without a difficulty
		_, err := useCaseInstance.GetOrCreateGame(context.Background(), "p1", entity.WithBotType, "")

		// Then: the configured default is used
		require.NoError(t, err)
		assert.Equal(t, engine.DifficultyHard, gamePlayService.difficulty)
	})

	t.Run("Rejects an unknown difficulty", func(t *testing.T) {
		// Given: a registered player
		useCaseInstance, playerService, _ := newUseCaseFixture(nil)
		playerService.players["p1"] = &entity.Player{ID: "p1"}

		// When: requesting a game on a made-up tier
		_, err := useCaseInstance.GetOrCreateGame(context.Background(), "p1", entity.WithBotType, "nightmare")

		// Then: the request is rejected
		require.ErrorIs(t, err, engine.ErrUnknownDifficulty)
	})
}

func TestGameUseCase_MakeTurn(t *testing.T) {
	t.Run("Cleans up once the series is decided", func(t *testing.T) {
		// Given: a game whose series is decided after the turn
		game := entity.NewGame("game1", entity.WithBotType, engine.DifficultyHard)
		game.Series.Winner = entity.PlayerX
		useCaseInstance, _, gamePlayService := newUseCaseFixture(game)

		// When: the turn is made
		_, err := useCaseInstance.MakeTurn(context.Background(), "p1", 0)

		// Then: the finished session is cleaned up
		require.NoError(t, err)
		assert.True(t, gamePlayService.cleanedUp)
	})

	t.Run("Keeps an undecided series alive", func(t *testing.T) {
		// Given: a game with an open series
		game := entity.NewGame("game1", entity.WithBotType, engine.DifficultyHard)
		useCaseInstance, _, gamePlayService := newUseCaseFixture(game)

		// When: the turn is made
		_, err := useCaseInstance.MakeTurn(context.Background(), "p1", 0)

		// Then: nothing is cleaned up
		require.NoError(t, err)
		assert.False(t, gamePlayService.cleanedUp)
	})
}
