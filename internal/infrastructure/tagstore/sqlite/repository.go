// Package sqlite provides a SQLite implementation of the TagStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/tag-core/internal/domain/entities"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Repository implements ports.TagStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	pragmas := []struct {
		stmt string
		what string
	}{
		{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
		{"PRAGMA journal_mode = WAL", "enabling WAL mode"},
		// Avoid "database is locked" errors
		{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &Repository{
		db:   db,
		path: path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Tag associations, one row per (kind, tag, key)
	CREATE TABLE IF NOT EXISTS associations (
		kind TEXT NOT NULL CHECK (kind IN ('item', 'fluid', 'block', 'block_state')),
		tag TEXT NOT NULL,
		key_id TEXT NOT NULL,
		meta INTEGER NOT NULL DEFAULT 0 CHECK (meta >= 0),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (kind, tag, key_id, meta)
	);
	CREATE INDEX IF NOT EXISTS idx_associations_key ON associations(kind, key_id, meta);

	-- Pack-wide flags such as closed registration
	CREATE TABLE IF NOT EXISTS pack_state (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Audit log (tracks all writes)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		run_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const (
	insertAssociation = `INSERT OR IGNORE INTO associations (kind, tag, key_id, meta) VALUES (?, ?, ?, ?)`
	deleteAssociation = `DELETE FROM associations WHERE kind = ? AND tag = ? AND key_id = ? AND meta = ?`
	deleteTag         = `DELETE FROM associations WHERE kind = ? AND tag = ?`
)

// ApplyChanges applies a journal of builder mutations in one transaction.
func (r *Repository) ApplyChanges(ctx context.Context, changes []entities.Change) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		for _, c := range changes {
			var err error
			switch c.Op {
			case entities.ChangeAdd:
				_, err = tx.ExecContext(ctx, insertAssociation, c.Kind, c.Tag, c.Key.ID, c.Key.Meta)
			case entities.ChangeRemoveKey:
				_, err = tx.ExecContext(ctx, deleteAssociation, c.Kind, c.Tag, c.Key.ID, c.Key.Meta)
			case entities.ChangeRemoveTag:
				_, err = tx.ExecContext(ctx, deleteTag, c.Kind, c.Tag)
			default:
				err = fmt.Errorf("unknown change op %q", c.Op)
			}
			if err != nil {
				return fmt.Errorf("applying %s %s/%s: %w", c.Op, c.Kind, c.Tag, err)
			}
		}
		return nil
	})
}

// SaveAssociations inserts associations, ignoring ones already stored.
func (r *Repository) SaveAssociations(ctx context.Context, assocs []entities.Association) error {
	if len(assocs) == 0 {
		return nil
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return insertAssociations(ctx, tx, assocs)
	})
}

// ReplaceAssociations deletes every stored association and inserts assocs
// in the same transaction. The audit log is kept.
func (r *Repository) ReplaceAssociations(ctx context.Context, assocs []entities.Association) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM associations`); err != nil {
			return fmt.Errorf("deleting associations: %w", err)
		}
		return insertAssociations(ctx, tx, assocs)
	})
}

func insertAssociations(ctx context.Context, tx *sql.Tx, assocs []entities.Association) error {
	stmt, err := tx.PrepareContext(ctx, insertAssociation)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range assocs {
		if _, err := stmt.ExecContext(ctx, a.Kind, a.Tag, a.Key.ID, a.Key.Meta); err != nil {
			return fmt.Errorf("saving association: %w", err)
		}
	}
	return nil
}

// LoadAssociations returns every stored association ordered by kind, tag and key.
func (r *Repository) LoadAssociations(ctx context.Context) ([]entities.Association, error) {
	query := `SELECT kind, tag, key_id, meta FROM associations ORDER BY kind, tag, key_id, meta`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying associations: %w", err)
	}
	defer rows.Close()

	var assocs []entities.Association
	for rows.Next() {
		var a entities.Association
		var kind string
		if err := rows.Scan(&kind, &a.Tag, &a.Key.ID, &a.Key.Meta); err != nil {
			return nil, fmt.Errorf("scanning association: %w", err)
		}
		a.Kind = entities.Kind(kind)
		assocs = append(assocs, a)
	}
	return assocs, rows.Err()
}

// CountAssociations returns the number of stored associations per kind.
func (r *Repository) CountAssociations(ctx context.Context) (map[entities.Kind]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM associations GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting associations: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[entities.Kind(kind)] = n
	}
	return counts, rows.Err()
}

const registrationState = "registration"

// MarkRegistrationClosed records the closed registration of the pack.
func (r *Repository) MarkRegistrationClosed(ctx context.Context) error {
	query := `
		INSERT INTO pack_state (name, value) VALUES (?, 'closed')
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, registrationState); err != nil {
		return fmt.Errorf("closing registration: %w", err)
	}
	return nil
}

// RegistrationClosed reports whether the pack's registration was closed.
func (r *Repository) RegistrationClosed(ctx context.Context) (bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM pack_state WHERE name = ?`, registrationState).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading registration state: %w", err)
	}
	return value == "closed", nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, runID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var runIDPtr sql.NullString
	if runID != "" {
		runIDPtr = sql.NullString{String: runID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, run_id, details) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, runIDPtr, detailsJSON)
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog returns the most recent audit log entries, newest first.
// A non-positive limit returns every entry.
func (r *Repository) FindAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, action, run_id, details, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	if limit > 0 {
		entries = make([]entities.AuditEntry, 0, limit)
	}

	for rows.Next() {
		var entry entities.AuditEntry
		var runID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&runID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.RunID = runID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// withTx runs fn inside a transaction, rolling back on error.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
