/*
Package sqlite provides a SQLite-backed ledger.Store.

The payroll_results table is append-only: rows are inserted, never updated
or deleted. The unique (employee_id, year, month, version) index rejects a
second write of the same version. The result itself is stored as JSON next
to the key columns.

The database is opened in WAL mode and the schema is migrated on New.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/internal/ledger"
	_ "github.com/mattn/go-sqlite3"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ ledger.Store = (*Store)(nil)

// New creates a SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS payroll_results (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		version INTEGER NOT NULL,
		result TEXT NOT NULL,
		reason TEXT,
		recorded_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_payroll_results_version
		ON payroll_results(employee_id, year, month, version);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append inserts a record. Append-only.
func (s *Store) Append(ctx context.Context, rec ledger.Record) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO payroll_results (id, employee_id, year, month, version, result, reason, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.EmployeeID, rec.Year, rec.Month, rec.Version,
		string(payload), nullString(rec.Reason), rec.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ledger.ErrDuplicateVersion
		}
		return fmt.Errorf("failed to insert payroll result: %w", err)
	}
	return nil
}

// History returns the records of the employee and year ordered by month and version.
func (s *Store) History(ctx context.Context, employeeID string, year int) ([]ledger.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, year, month, version, result, reason, recorded_at
		FROM payroll_results
		WHERE employee_id = ? AND year = ?
		ORDER BY month, version`,
		employeeID, year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll results: %w", err)
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (ledger.Record, error) {
	var (
		rec        ledger.Record
		id         string
		payload    string
		reason     sql.NullString
		recordedAt string
	)
	if err := rows.Scan(&id, &rec.EmployeeID, &rec.Year, &rec.Month, &rec.Version, &payload, &reason, &recordedAt); err != nil {
		return rec, fmt.Errorf("failed to scan payroll result: %w", err)
	}

	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return rec, fmt.Errorf("invalid record id %q: %w", id, err)
	}
	if rec.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
		return rec, fmt.Errorf("invalid recorded_at %q: %w", recordedAt, err)
	}
	var result domain.PayrollResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return rec, fmt.Errorf("failed to decode result %s: %w", id, err)
	}
	rec.Result = result
	rec.Reason = reason.String
	return rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
