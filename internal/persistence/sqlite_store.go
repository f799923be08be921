// Package persistence stores the job history in a local SQLite file.
package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rameshbaboov/french-vocabs/internal/jobs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	// Bootstrap schema_migrations table so we can track applied versions.
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename (e.g. "001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

// RecordStart inserts a history row for a freshly launched job. Replaying
// the same id overwrites the previous row.
func (s *SQLiteStore) RecordStart(ctx context.Context, record jobs.Record) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO job_history (id, job_type, log_path, started_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			job_type=excluded.job_type,
			log_path=excluded.log_path,
			started_at=excluded.started_at,
			stopped_at=NULL,
			outcome=NULL`,
		record.ID,
		string(record.JobType),
		record.LogPath,
		record.StartedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// RecordStop marks the history row as finished with the given outcome.
func (s *SQLiteStore) RecordStop(ctx context.Context, id string, stoppedAt time.Time, outcome string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE job_history SET stopped_at = ?, outcome = ? WHERE id = ?`,
		stoppedAt.UTC().Format(time.RFC3339),
		outcome,
		id,
	)
	return err
}

// ListRecent returns the most recently started jobs, newest first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]jobs.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, job_type, log_path, started_at, stopped_at, outcome
		 FROM job_history
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]jobs.Record, 0)
	for rows.Next() {
		var item jobs.Record
		var jobType, startedAt string
		var stoppedAt, outcome sql.NullString
		if err := rows.Scan(&item.ID, &jobType, &item.LogPath, &startedAt, &stoppedAt, &outcome); err != nil {
			return nil, err
		}
		item.JobType = jobs.Type(jobType)
		if item.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at of %s: %w", item.ID, err)
		}
		if stoppedAt.Valid {
			t, err := time.Parse(time.RFC3339, stoppedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parse stopped_at of %s: %w", item.ID, err)
			}
			item.StoppedAt = &t
		}
		item.Outcome = outcome.String
		ret = append(ret, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}
