package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the tables the reporting workers write to. Each statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS daily_summaries (
		id                UUID PRIMARY KEY,
		user_ref          TEXT NOT NULL,
		summary_date      DATE NOT NULL,
		consumed_calories INTEGER NOT NULL,
		burned_calories   INTEGER NOT NULL,
		net_calories      INTEGER NOT NULL,
		feedback          TEXT NOT NULL,
		bmi               DOUBLE PRECISION,
		bmi_category      TEXT,
		report            JSONB NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE daily_summaries
		ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()`,
	`CREATE INDEX IF NOT EXISTS idx_daily_summaries_user_date
		ON daily_summaries (user_ref, summary_date)`,
}

// EnsureSchema runs every schema statement inside one transaction.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
