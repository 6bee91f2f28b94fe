package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// SeriesRecord is one finished best-of-5 series as stored in the archive.
type SeriesRecord struct {
	GameID     string
	Difficulty string
	Winner     string
	WinsX      int
	WinsO      int
	Ties       int
	FinishedAt time.Time
}

type ArchiveRepository interface {
	SaveSeries(ctx context.Context, game *entity.Game) error
	ListRecent(ctx context.Context, limit int) ([]SeriesRecord, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) SaveSeries(ctx context.Context, game *entity.Game) error {
	if game.Series == nil {
		return nil
	}

	query := `INSERT INTO series_results (game_id, difficulty, winner, wins_x, wins_o, ties)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		game.ID,
		string(game.Difficulty),
		game.Series.Winner,
		game.Series.WinsX,
		game.Series.WinsO,
		game.Series.Ties,
	)
	if err != nil {
		return fmt.Errorf("failed to save series result: %w", err)
	}

	return nil
}

func (that *dbArchive) ListRecent(ctx context.Context, limit int) ([]SeriesRecord, error) {
	query := `SELECT game_id, difficulty, winner, wins_x, wins_o, ties, finished_at
		FROM series_results ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list series results: %w", err)
	}
	defer rows.Close()

	var records []SeriesRecord
	for rows.Next() {
		var record SeriesRecord
		if err = rows.Scan(
			&record.GameID,
			&record.Difficulty,
			&record.Winner,
			&record.WinsX,
			&record.WinsO,
			&record.Ties,
			&record.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan series result: %w", err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate series results: %w", err)
	}

	return records, nil
}
