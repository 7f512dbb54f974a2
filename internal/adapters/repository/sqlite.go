package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"econlab/internal/domain/econ"
	"econlab/internal/domain/model"
	"econlab/pkg/logger"
	"econlab/pkg/metrics"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists evaluation records to a SQLite database so
// history survives restarts.
type SQLiteStore struct {
	db  *sql.DB
	log logger.Logger
}

// NewSQLiteStore opens (or creates) the SQLite database and runs
// migrations. Use ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// The driver serializes access per connection; a single connection
	// keeps the in-memory variant on one shared database as well.
	db.SetMaxOpenConns(1)

	// WAL mode for concurrent reads while workers write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: logger.Named("sqlite-store")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info(context.Background(), "sqlite history store opened", logger.String("path", path))
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			job_id     TEXT PRIMARY KEY,
			request_id TEXT,
			kind       TEXT NOT NULL,
			params     TEXT NOT NULL,
			status     TEXT NOT NULL,
			outputs    TEXT,
			tags       TEXT,
			reason     TEXT,
			finished   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_finished ON evaluations(finished)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_status ON evaluations(status)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Record stores a finished evaluation, overwriting any earlier record
// with the same job id.
func (s *SQLiteStore) Record(ctx context.Context, rec model.Record) error {
	params, outputs, tags, err := marshalRecord(rec)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO evaluations
		(job_id, request_id, kind, params, status, outputs, tags, reason, finished)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(job_id) DO UPDATE SET
			request_id=excluded.request_id, kind=excluded.kind,
			params=excluded.params, status=excluded.status,
			outputs=excluded.outputs, tags=excluded.tags,
			reason=excluded.reason, finished=excluded.finished`,
		rec.JobID, rec.RequestID, string(rec.Kind), params,
		string(rec.Status), outputs, tags, rec.Reason,
		rec.Finished.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}

	metrics.UpdateHistorySize(s.Count(ctx))
	return nil
}

// RecordIfAbsent stores the record only when the job id is not yet known.
func (s *SQLiteStore) RecordIfAbsent(ctx context.Context, rec model.Record) error {
	params, outputs, tags, err := marshalRecord(rec)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO evaluations
		(job_id, request_id, kind, params, status, outputs, tags, reason, finished)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(job_id) DO NOTHING`,
		rec.JobID, rec.RequestID, string(rec.Kind), params,
		string(rec.Status), outputs, tags, rec.Reason,
		rec.Finished.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}

	metrics.UpdateHistorySize(s.Count(ctx))
	return nil
}

// marshalRecord encodes the JSON columns of a record.
func marshalRecord(rec model.Record) (params, outputs, tags string, err error) {
	p, err := json.Marshal(rec.Params)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal params: %w", err)
	}
	o, err := json.Marshal(rec.Outputs)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal outputs: %w", err)
	}
	t, err := json.Marshal(rec.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(p), string(o), string(t), nil
}

// Get returns the record for a job id.
func (s *SQLiteStore) Get(ctx context.Context, jobID string) (model.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT job_id, request_id, kind, params,
		status, outputs, tags, reason, finished
		FROM evaluations WHERE job_id = ?`, jobID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Record{}, ErrNotFound
	}
	if err != nil {
		return model.Record{}, fmt.Errorf("query evaluation: %w", err)
	}
	return rec, nil
}

// Recent returns up to n records, most recently finished first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]model.Record, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx, `SELECT job_id, request_id, kind, params,
		status, outputs, tags, reason, finished
		FROM evaluations ORDER BY finished DESC, job_id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	out := make([]model.Record, 0, n)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return out, nil
}

// Count returns the number of records kept.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&n); err != nil {
		s.log.Warn(ctx, "count evaluations", logger.Error(err))
		return 0
	}
	return n
}

// CountByStatus returns the number of kept records per job status.
func (s *SQLiteStore) CountByStatus(ctx context.Context) map[model.JobStatus]int {
	counts := make(map[model.JobStatus]int)

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM evaluations GROUP BY status`)
	if err != nil {
		s.log.Warn(ctx, "count evaluations by status", logger.Error(err))
		return counts
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			s.log.Warn(ctx, "scan status count", logger.Error(err))
			return counts
		}
		counts[model.JobStatus(status)] = n
	}
	return counts
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.log.Info(context.Background(), "closing sqlite history store")
	return s.db.Close()
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (model.Record, error) {
	var rec model.Record
	var kind, params, outputs, tags string
	var status string
	var finished int64

	if err := sc.Scan(&rec.JobID, &rec.RequestID, &kind, &params,
		&status, &outputs, &tags, &rec.Reason, &finished); err != nil {
		return model.Record{}, err
	}

	rec.Kind = econ.ModelKind(kind)
	rec.Status = model.JobStatus(status)
	rec.Finished = time.Unix(0, finished)

	if err := json.Unmarshal([]byte(params), &rec.Params); err != nil {
		return model.Record{}, fmt.Errorf("unmarshal params: %w", err)
	}
	if outputs != "" && outputs != "null" {
		if err := json.Unmarshal([]byte(outputs), &rec.Outputs); err != nil {
			return model.Record{}, fmt.Errorf("unmarshal outputs: %w", err)
		}
	}
	if tags != "" && tags != "null" {
		if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
			return model.Record{}, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	return rec, nil
}
