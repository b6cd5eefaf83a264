package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// timeLayout is the on-disk timestamp format: ISO-8601 in UTC with a
// fixed-width millisecond fraction, so lexicographic order equals
// chronological order and ORDER BY on the text column is correct.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// topSubstanceLimit caps the per-substance ranking returned by Stats.
const topSubstanceLimit = 5

// Store defines the interface for journal data operations.
type Store interface {
	ListAll(ctx context.Context) ([]Entry, error)
	List(ctx context.Context, q ListQuery) ([]Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	Create(ctx context.Context, entry *Entry) error
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*Stats, error)
	ExportSnapshot(ctx context.Context) ([]byte, error)
	ImportSnapshot(ctx context.Context, blob []byte) error
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database file.
//
// A store-level mutex spans every operation, so overlapping calls (rapid
// double-submit, import racing a create) serialize rather than interleave
// their read-modify-persist sequences. The connection pool is pinned to a
// single connection for the same reason.
type SQLiteStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string

	// Prepared statements for the fixed-shape operations.
	insertEntry *sql.Stmt
	updateEntry *sql.Stmt
	getEntry    *sql.Stmt
	deleteEntry *sql.Stmt
	listEntries *sql.Stmt
}

// Open creates the database file (and its parent directory) if needed,
// applies pragmas, runs schema migrations, and prepares statements.
// Opening an existing database is idempotent.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	slog.Debug("journal database ready", slog.String("path", path))
	return s, nil
}

// openDatabase opens a SQLite file and brings its schema up to date.
func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer: the store never needs concurrent connections, and one
	// connection keeps SQLite from ever seeing interleaved writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := NewMigrationRunner(db).Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertEntry, err = s.db.Prepare(`
		INSERT INTO logs (id, substance, notes, feelings, dosage, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.updateEntry, err = s.db.Prepare(`
		UPDATE logs SET substance = ?, notes = ?, feelings = ?, dosage = ?, timestamp = ?
		WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.getEntry, err = s.db.Prepare(`
		SELECT id, substance, notes, feelings, dosage, timestamp
		FROM logs WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.deleteEntry, err = s.db.Prepare(`DELETE FROM logs WHERE id = ?`)
	if err != nil {
		return err
	}

	s.listEntries, err = s.db.Prepare(`
		SELECT id, substance, notes, feelings, dosage, timestamp
		FROM logs ORDER BY timestamp DESC, id ASC
	`)
	if err != nil {
		return err
	}

	return nil
}

// closeStatements finalizes all prepared statements.
func (s *SQLiteStore) closeStatements() {
	stmts := []*sql.Stmt{
		s.insertEntry, s.updateEntry, s.getEntry,
		s.deleteEntry, s.listEntries,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
}

// formatTimestamp renders a time in the on-disk layout.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTimestamp tries the native layout first, then several common
// ISO-8601 variants so imported snapshots from other writers still load.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		timeLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// encodeFeelings serializes a feeling set as a JSON array. An empty set is
// normalized to absent (SQL NULL).
func encodeFeelings(feelings []string) (sql.NullString, error) {
	if len(feelings) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(feelings)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode feelings: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeFeelings parses the JSON feelings column; NULL decodes to nil.
func decodeFeelings(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var feelings []string
	if err := json.Unmarshal([]byte(raw.String), &feelings); err != nil {
		return nil, fmt.Errorf("decode feelings: %w", err)
	}
	if len(feelings) == 0 {
		return nil, nil
	}
	return feelings, nil
}

// nullIfEmpty maps "" to SQL NULL for the optional text columns.
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Create inserts a new entry. An entry arriving without an ID is assigned
// one; an entry arriving without a timestamp is stamped with the current
// time. Creating an id that already exists fails with ErrDuplicateID.
func (s *SQLiteStore) Create(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(entry.Substance) == "" {
		return fmt.Errorf("create entry: substance is required")
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	feelings, err := encodeFeelings(entry.Feelings)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	_, err = s.insertEntry.ExecContext(ctx,
		entry.ID, entry.Substance, nullIfEmpty(entry.Notes),
		feelings, nullIfEmpty(entry.Dosage), formatTimestamp(entry.Timestamp),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("entry %s: %w", entry.ID, ErrDuplicateID)
		}
		return fmt.Errorf("insert entry: %w", err)
	}

	return nil
}

// Update replaces all mutable fields of the entry matching id. A missing
// id reports ErrNotFound rather than succeeding silently.
func (s *SQLiteStore) Update(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		return fmt.Errorf("update entry: id is required")
	}
	if strings.TrimSpace(entry.Substance) == "" {
		return fmt.Errorf("update entry: substance is required")
	}

	feelings, err := encodeFeelings(entry.Feelings)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	res, err := s.updateEntry.ExecContext(ctx,
		entry.Substance, nullIfEmpty(entry.Notes), feelings,
		nullIfEmpty(entry.Dosage), formatTimestamp(entry.Timestamp), entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", entry.ID, ErrNotFound)
	}

	return nil
}

// Get retrieves a single entry by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var e Entry
	var notes, feelings, dosage sql.NullString
	var tsStr string

	err := s.getEntry.QueryRowContext(ctx, id).Scan(
		&e.ID, &e.Substance, &notes, &feelings, &dosage, &tsStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	e.Notes = notes.String
	e.Dosage = dosage.String
	e.Timestamp, _ = parseTimestamp(tsStr)
	if e.Feelings, err = decodeFeelings(feelings); err != nil {
		return nil, fmt.Errorf("entry %s: %w", id, err)
	}

	return &e, nil
}

// ListAll returns every entry ordered by timestamp descending. There is no
// pagination at this layer; windowing is the caller's concern.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.listEntries.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return collectEntries(rows)
}

// List returns a filtered, paginated view of the entries, same ordering
// contract as ListAll.
func (s *SQLiteStore) List(ctx context.Context, q ListQuery) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	sb := sq.Select("id", "substance", "notes", "feelings", "dosage", "timestamp").
		From("logs").
		OrderBy("timestamp DESC", "id ASC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset))

	if q.Substance != "" {
		sb = sb.Where(sq.Eq{"substance": q.Substance})
	}
	if !q.Since.IsZero() {
		sb = sb.Where(sq.GtOrEq{"timestamp": formatTimestamp(q.Since)})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return collectEntries(rows)
}

// collectEntries scans query results into Entry values. Always returns an
// empty slice rather than nil for an empty result.
func collectEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var notes, feelings, dosage sql.NullString
		var tsStr string
		if err := rows.Scan(&e.ID, &e.Substance, &notes, &feelings, &dosage, &tsStr); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Notes = notes.String
		e.Dosage = dosage.String
		e.Timestamp, _ = parseTimestamp(tsStr)

		var err error
		if e.Feelings, err = decodeFeelings(feelings); err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Delete removes the entry matching id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.deleteEntry.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}

	return nil
}

// Clear removes all entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM logs"); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	slog.InfoContext(ctx, "journal cleared", slog.String("path", s.path))
	return nil
}

// Stats returns aggregate statistics about the journal.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM logs").Scan(&stats.TotalEntries)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT substance) FROM logs").Scan(&stats.DistinctSubstances)
	if err != nil {
		return nil, fmt.Errorf("count substances: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&stats.SchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("schema version: %w", err)
	}

	// Oldest and newest (handle empty journal)
	if stats.TotalEntries > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx, "SELECT MIN(timestamp), MAX(timestamp) FROM logs").Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("entry time range: %w", err)
		}
		stats.OldestEntry, _ = parseTimestamp(oldestStr)
		stats.NewestEntry, _ = parseTimestamp(newestStr)
	}

	query, args, err := sq.Select("substance", "COUNT(*) AS cnt").
		From("logs").
		GroupBy("substance").
		OrderBy("cnt DESC", "substance ASC").
		Limit(topSubstanceLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top substances query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top substances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc SubstanceCount
		if err := rows.Scan(&sc.Substance, &sc.Count); err != nil {
			return nil, err
		}
		stats.TopSubstances = append(stats.TopSubstances, sc)
	}

	return stats, rows.Err()
}

// Close finalizes the prepared statements and closes the database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeStatements()
	return s.db.Close()
}
