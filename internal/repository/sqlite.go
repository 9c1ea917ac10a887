package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS alert_archive (
			id TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			severity TEXT NOT NULL,
			location TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			acknowledged INTEGER NOT NULL DEFAULT 0,
			archived_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_alert_archive_timestamp ON alert_archive(timestamp);
		CREATE INDEX IF NOT EXISTS idx_alert_archive_severity ON alert_archive(severity);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteDB) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("error writing key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteDB) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("error deleting key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteDB) ArchiveAlerts(ctx context.Context, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO alert_archive
			(id, timestamp, severity, location, title, description, acknowledged, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("error preparing archive insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixNano()
	for _, a := range alerts {
		if _, err := stmt.ExecContext(ctx,
			a.ID, a.Timestamp.UnixNano(), string(a.Severity), a.Location,
			a.Title, a.Description, a.Acknowledged, now,
		); err != nil {
			return fmt.Errorf("error archiving alert %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) ListArchived(ctx context.Context, opts Filter) ([]models.Alert, error) {
	var (
		where []string
		args  []any
	)
	if opts.Severity != nil {
		where = append(where, "severity = ?")
		args = append(args, string(*opts.Severity))
	}
	if opts.Since != nil {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.Since.UnixNano())
	}

	query := `SELECT id, timestamp, severity, location, title, description, acknowledged FROM alert_archive`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing archived alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var (
			a           models.Alert
			ts          int64
			severity    string
			description sql.NullString
		)
		if err := rows.Scan(&a.ID, &ts, &severity, &a.Location, &a.Title, &description, &a.Acknowledged); err != nil {
			return nil, fmt.Errorf("error scanning archived alert: %w", err)
		}
		a.Timestamp = time.Unix(0, ts).UTC()
		a.Severity = models.ThreatLevel(severity)
		a.Description = description.String
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
