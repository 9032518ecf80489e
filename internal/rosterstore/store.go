package rosterstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"rollcall/internal/identity"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases must then be re-imported.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// version of this tool.
var ErrSchemaMismatch = errors.New("rosterstore: schema version mismatch")

// ErrImportLocked indicates another process is importing into the same
// database right now.
var ErrImportLocked = errors.New("rosterstore: another import is in progress")

// Store manages roster persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the roster database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create roster db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s and re-import)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// ReplaceRoster replaces one role's roster wholesale and returns the import
// batch id. A file lock next to the database serializes importers; a held
// lock yields ErrImportLocked rather than interleaved imports.
func (s *Store) ReplaceRoster(ctx context.Context, role identity.Role, records []identity.Record) (string, error) {
	lock := flock.New(s.path + ".import.lock")
	locked, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return "", ErrImportLocked
	}
	defer func() { _ = lock.Unlock() }()

	batch := uuid.NewString()
	importedAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM roster_members WHERE role = ?", string(role)); err != nil {
		return "", fmt.Errorf("clear roster %s: %w", role, err)
	}
	for position, rec := range records {
		if rec.ID == "" {
			return "", fmt.Errorf("record at position %d has no identifier", position)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO roster_members (
                role, position, id, display_name, full_name, login, email, external_id,
                import_batch, imported_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(role), position, rec.ID,
			rec.DisplayName, rec.FullName, rec.Login, rec.Email, rec.ExternalID,
			batch, importedAt,
		)
		if err != nil {
			return "", fmt.Errorf("insert member %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit import: %w", err)
	}
	return batch, nil
}

// Roster returns one role's records in import order.
func (s *Store) Roster(ctx context.Context, role identity.Role) ([]identity.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_name, full_name, login, email, external_id
         FROM roster_members WHERE role = ? ORDER BY position`,
		string(role),
	)
	if err != nil {
		return nil, fmt.Errorf("query roster %s: %w", role, err)
	}
	defer rows.Close()

	var records []identity.Record
	for rows.Next() {
		var rec identity.Record
		if err := rows.Scan(&rec.ID, &rec.DisplayName, &rec.FullName, &rec.Login, &rec.Email, &rec.ExternalID); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster %s: %w", role, err)
	}
	return records, nil
}

// Count returns the number of members stored for a role.
func (s *Store) Count(ctx context.Context, role identity.Role) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM roster_members WHERE role = ?", string(role),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count roster %s: %w", role, err)
	}
	return count, nil
}

// Clear removes every member of a role.
func (s *Store) Clear(ctx context.Context, role identity.Role) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM roster_members WHERE role = ?", string(role)); err != nil {
		return fmt.Errorf("clear roster %s: %w", role, err)
	}
	return nil
}
