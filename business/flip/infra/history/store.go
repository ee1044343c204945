// Package history persists flip results to SQLite, one row per
// item+strategy upserted on every run.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fliplab/bzflip/business/flip/domain"
	"github.com/fliplab/bzflip/internal/apperror"
)

const schema = `
CREATE TABLE IF NOT EXISTS flips (
    item_id     TEXT     NOT NULL,
    strategy    TEXT     NOT NULL,
    run_id      TEXT     NOT NULL,
    profit      REAL     NOT NULL DEFAULT 0,
    buy_volume  INTEGER  NOT NULL DEFAULT 0,
    sell_volume INTEGER  NOT NULL DEFAULT 0,
    recorded_at DATETIME NOT NULL,
    PRIMARY KEY (item_id, strategy)
);

CREATE INDEX IF NOT EXISTS idx_flips_profit ON flips(strategy, profit DESC);
`

const upsert = `
INSERT INTO flips (item_id, strategy, run_id, profit, buy_volume, sell_volume, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (item_id, strategy) DO UPDATE SET
    run_id      = excluded.run_id,
    profit      = excluded.profit,
    buy_volume  = excluded.buy_volume,
    sell_volume = excluded.sell_volume,
    recorded_at = excluded.recorded_at
`

// Store is a SQLite-backed flip history (pure Go driver, no CGo).
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and applies the schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperror.New(apperror.CodeStorageError, apperror.WithCause(err))
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperror.New(apperror.CodeStorageError,
			apperror.WithContext("apply schema"),
			apperror.WithCause(err),
		)
	}

	return &Store{db: db}, nil
}

// RecordRun upserts every result under a fresh run id and returns it.
func (s *Store) RecordRun(ctx context.Context, results []domain.Result) (string, error) {
	runID := uuid.NewString()
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", apperror.New(apperror.CodeStorageError, apperror.WithCause(err))
	}
	defer tx.Rollback()

	for _, result := range results {
		base := result.Base()
		profit, _ := base.Profit.Float64()

		if _, err := tx.ExecContext(ctx, upsert,
			base.ItemID, string(base.Strategy), runID,
			profit, base.BuyVolume, base.SellVolume, now,
		); err != nil {
			return "", apperror.New(apperror.CodeStorageError,
				apperror.WithContext(base.ItemID),
				apperror.WithCause(err),
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", apperror.New(apperror.CodeStorageError, apperror.WithCause(err))
	}
	return runID, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
