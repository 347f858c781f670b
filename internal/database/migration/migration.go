package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is checked before any step runs; when present the schema is assumed current.
const sentinelTable = "public.workspace_state"

var steps = []migrationStep{
	{
		Name: "create_table_workspace_state",
		SQL: `CREATE TABLE IF NOT EXISTS workspace_state (
  key        TEXT        PRIMARY KEY,
  value      BYTEA       NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_workspace_state_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_workspace_state_updated_at ON workspace_state (updated_at);`,
	},
}

// EnsureMigrated creates the workspace_state table when it does not exist yet.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger, dbHost string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("migration").With(zap.String("db_host", dbHost))
	start := time.Now()

	log.Info("db_migration_check")

	var exists bool
	query := "SELECT to_regclass($1) IS NOT NULL"
	if err := db.QueryRowContext(ctx, query, sentinelTable).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success", zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
