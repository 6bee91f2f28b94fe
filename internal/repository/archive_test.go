package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchiveSuite(t *testing.T) (context.Context, ArchiveRepository) {
	t.Helper()

	ctx := context.Background()

	sqliteStorage, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, sqliteStorage.Close())
	})

	require.NoError(t, sqliteStorage.Init(ctx))

	return ctx, NewArchiveRepository(sqliteStorage.Connection)
}

func TestArchiveRepository_SaveSeries(t *testing.T) {
	ctx, archiveRepo := newArchiveSuite(t)

	// Given: a decided best-of-5 series
	game := entity.NewGame("123", entity.WithBotType, engine.DifficultyHard)
	game.Series.WinsX = 3
	game.Series.WinsO = 1
	game.Series.Ties = 1
	game.Series.Winner = entity.PlayerX

	// When: the series is archived
	err := archiveRepo.SaveSeries(ctx, game)

	// Then: no error should be returned and the record is readable
	require.NoError(t, err)

	records, err := archiveRepo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "123", records[0].GameID)
	assert.Equal(t, string(engine.DifficultyHard), records[0].Difficulty)
	assert.Equal(t, entity.PlayerX, records[0].Winner)
	assert.Equal(t, 3, records[0].WinsX)
	assert.Equal(t, 1, records[0].WinsO)
	assert.Equal(t, 1, records[0].Ties)
	assert.False(t, records[0].FinishedAt.IsZero())
}

func TestArchiveRepository_ListRecent(t *testing.T) {
	t.Run("Respects the limit", func(t *testing.T) {
		ctx, archiveRepo := newArchiveSuite(t)

		// Given: three archived series
		for _, id := range []string{"a", "b", "c"} {
			game := entity.NewGame(id, entity.WithBotType, engine.DifficultyEasy)
			game.Series.Winner = entity.PlayerO
			game.Series.WinsO = 3
			require.NoError(t, archiveRepo.SaveSeries(ctx, game))
		}

		// When: listing with a limit of two
		records, err := archiveRepo.ListRecent(ctx, 2)

		// Then: only two records come back
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("Empty archive lists nothing", func(t *testing.T) {
		ctx, archiveRepo := newArchiveSuite(t)

		// When: listing an empty archive
		records, err := archiveRepo.ListRecent(ctx, 10)

		// Then: no records and no error
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Games without a series are skipped", func(t *testing.T) {
		ctx, archiveRepo := newArchiveSuite(t)

		// Given: a game with no series bookkeeping
		game := &entity.Game{ID: "no-series"}

		// When: the game is archived
		err := archiveRepo.SaveSeries(ctx, game)

		// Then: nothing is stored
		require.NoError(t, err)

		records, err := archiveRepo.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
