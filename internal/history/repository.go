package history

import (
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/vitals/internal/database"
)

// Repository defines the persistence interface for history records.
type Repository interface {
	Save(rec *Record) error
	List(limit int) ([]Record, error)
	ListByMetric(metric string, limit int) ([]Record, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the history repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS history (
            id        INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp TEXT    NOT NULL,
            action    TEXT    NOT NULL,
            metric    TEXT    NOT NULL DEFAULT '',
            mode      TEXT    NOT NULL DEFAULT '',
            outcome   TEXT    NOT NULL DEFAULT '',
            detail    TEXT    NOT NULL DEFAULT ''
        );
        CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
        CREATE INDEX IF NOT EXISTS idx_history_metric ON history(metric);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("history: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new record.
func (r *SQLiteRepository) Save(rec *Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if rec.Outcome == "" {
		rec.Outcome = OutcomeSuccess
	}

	result, err := r.db.Exec(`
        INSERT INTO history (timestamp, action, metric, mode, outcome, detail)
        VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UTC().Format(time.RFC3339Nano), rec.Action, rec.Metric, rec.Mode, rec.Outcome, rec.Detail,
	)
	if err != nil {
		return fmt.Errorf("history: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: failed to get last insert ID: %w", err)
	}
	rec.ID = id
	return nil
}

// List returns the most recent n records.
func (r *SQLiteRepository) List(limit int) ([]Record, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, action, metric, mode, outcome, detail
        FROM history ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByMetric returns the most recent n records for one metric.
func (r *SQLiteRepository) ListByMetric(metric string, limit int) ([]Record, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, action, metric, mode, outcome, detail
        FROM history WHERE metric = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, metric, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes records older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM history WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		var timestampStr string
		err := rows.Scan(&rec.ID, &timestampStr, &rec.Action, &rec.Metric, &rec.Mode, &rec.Outcome, &rec.Detail)
		if err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
