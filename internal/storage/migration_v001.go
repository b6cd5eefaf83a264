package storage

import "database/sql"

// migrateV001 creates the initial journal schema. Every statement uses
// IF NOT EXISTS so the migration is also safe to re-apply against an
// imported snapshot that predates the schema_migrations table.
//
// The logs table is the exchange contract for export/import: its column
// set must not change without a compatibility story for old snapshots.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS logs (
			id        TEXT PRIMARY KEY,
			substance TEXT NOT NULL,
			notes     TEXT,
			feelings  TEXT,
			dosage    TEXT,
			timestamp TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_substance ON logs(substance)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_substance_ts ON logs(substance, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
