package storage

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// sqliteHeader is the 16-byte magic string opening every SQLite database
// file.
const sqliteHeader = "SQLite format 3\x00"

// snapshotColumns are the columns an imported logs table must carry.
var snapshotColumns = []string{"id", "substance", "notes", "feelings", "dosage", "timestamp"}

// ExportSnapshot returns the journal as a standalone SQLite database blob.
// VACUUM INTO produces a complete, consistent copy regardless of WAL
// state, so the blob opens in any SQLite without the -wal sidecar.
func (s *SQLiteStore) ExportSnapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp("", "doselog-snapshot-*.db")
	if err != nil {
		return nil, fmt.Errorf("create snapshot file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	// VACUUM INTO refuses to write over an existing file.
	os.Remove(tmpPath)
	defer os.Remove(tmpPath)

	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", tmpPath); err != nil {
		return nil, fmt.Errorf("vacuum into snapshot: %w", err)
	}

	blob, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	slog.DebugContext(ctx, "snapshot exported", slog.Int("bytes", len(blob)))
	return blob, nil
}

// CheckSnapshot validates an import candidate without touching the live
// database. A valid SQLite file without a logs table is compatible (the
// table is re-created empty on import); a logs table missing any required
// column is not.
func CheckSnapshot(blob []byte) SnapshotCheck {
	// The SQLite header alone is 100 bytes.
	if len(blob) < 100 {
		return SnapshotCheck{Reason: "too short to be a SQLite database"}
	}
	if !bytes.HasPrefix(blob, []byte(sqliteHeader)) {
		return SnapshotCheck{Reason: "missing SQLite file header"}
	}

	tmp, err := os.CreateTemp("", "doselog-check-*.db")
	if err != nil {
		return SnapshotCheck{Reason: fmt.Sprintf("stage snapshot: %v", err)}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return SnapshotCheck{Reason: fmt.Sprintf("stage snapshot: %v", err)}
	}
	tmp.Close()

	db, err := sql.Open("sqlite3", "file:"+tmpPath+"?mode=ro")
	if err != nil {
		return SnapshotCheck{Reason: fmt.Sprintf("open snapshot: %v", err)}
	}
	defer db.Close()

	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'logs'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		return SnapshotCheck{Compatible: true}
	}
	if err != nil {
		return SnapshotCheck{Reason: fmt.Sprintf("not a readable SQLite database: %v", err)}
	}

	cols, err := tableColumns(db, "logs")
	if err != nil {
		return SnapshotCheck{Reason: fmt.Sprintf("inspect logs table: %v", err)}
	}
	for _, col := range snapshotColumns {
		if !cols[col] {
			return SnapshotCheck{Reason: fmt.Sprintf("logs table is missing the %s column", col)}
		}
	}

	return SnapshotCheck{Compatible: true}
}

// tableColumns returns the column-name set of a table via PRAGMA table_info.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dfltVal sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltVal, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// ImportSnapshot replaces the entire journal with the given blob. This is
// a destructive whole-store replacement, not a merge. The incoming
// database is validated and migrated off to the side first; the live file
// is only touched once the replacement is known to open, and the previous
// database is kept as a .bak until the swap has succeeded.
func (s *SQLiteStore) ImportSnapshot(ctx context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if check := CheckSnapshot(blob); !check.Compatible {
		return fmt.Errorf("import snapshot: %w: %s", ErrIncompatibleSnapshot, check.Reason)
	}

	// Stage the incoming database next to the live file so the final
	// rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".doselog-import-*.db")
	if err != nil {
		return fmt.Errorf("stage snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("stage snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage snapshot: %w", err)
	}

	// Schema re-assurance on the staged copy: a snapshot without the logs
	// table gains an empty one before it goes live.
	staged, err := openDatabase(tmpPath)
	if err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}
	staged.Close()
	os.Remove(tmpPath + "-wal")
	os.Remove(tmpPath + "-shm")

	// Swap: move the live database aside, the staged one in, then reopen.
	s.closeStatements()
	s.db.Close()

	bakPath := s.path + ".bak"
	if err := os.Rename(s.path, bakPath); err != nil {
		if reopenErr := s.reopen(); reopenErr != nil {
			return fmt.Errorf("back up database: %w (reopen failed: %v)", err, reopenErr)
		}
		return fmt.Errorf("back up database: %w", err)
	}
	os.Remove(s.path + "-wal")
	os.Remove(s.path + "-shm")

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Rename(bakPath, s.path)
		if reopenErr := s.reopen(); reopenErr != nil {
			return fmt.Errorf("install snapshot: %w (reopen failed: %v)", err, reopenErr)
		}
		return fmt.Errorf("install snapshot: %w", err)
	}

	if err := s.reopen(); err != nil {
		// Put the previous database back and recover the handle.
		os.Remove(s.path)
		os.Rename(bakPath, s.path)
		if reopenErr := s.reopen(); reopenErr != nil {
			return fmt.Errorf("import snapshot: %w (restore failed: %v)", err, reopenErr)
		}
		return fmt.Errorf("import snapshot: %w", err)
	}

	os.Remove(bakPath)
	slog.InfoContext(ctx, "snapshot imported",
		slog.Int("bytes", len(blob)), slog.String("path", s.path))
	return nil
}

// reopen re-establishes the database handle and prepared statements after
// a snapshot swap.
func (s *SQLiteStore) reopen() error {
	db, err := openDatabase(s.path)
	if err != nil {
		return err
	}
	s.db = db
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return fmt.Errorf("prepare statements: %w", err)
	}
	return nil
}
