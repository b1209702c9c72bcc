package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/rxcore/internal/trace"
)

// ErrRunNotFound is returned by LoadRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is the summary of one recorded scenario run.
type Run struct {
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario"`
	CreatedAt  time.Time `json:"created_at"`
	EntryCount int       `json:"entry_count"`
}

// SaveRun stores t as a new run and returns its summary.
// The run and all of its entries are written in one transaction.
func (s *Store) SaveRun(ctx context.Context, t trace.Trace) (Run, error) {
	run := Run{
		ID:         s.newID(),
		Scenario:   t.Scenario,
		CreatedAt:  s.now().UTC().Truncate(time.Second),
		EntryCount: len(t.Entries),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, created_at, entry_count)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Scenario, run.CreatedAt.Unix(), run.EntryCount)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (run_id, seq, subscriber, kind, value, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	defer stmt.Close()

	for _, e := range t.Entries {
		if _, err := stmt.ExecContext(ctx, run.ID, e.Seq, e.Subscriber, e.Kind, e.Value, e.Error); err != nil {
			return Run{}, fmt.Errorf("save run: entry %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// LoadRun returns the summary and trace of a recorded run.
// Entries are ordered by seq.
func (s *Store) LoadRun(ctx context.Context, id string) (Run, trace.Trace, error) {
	var (
		run     Run
		created int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, created_at, entry_count
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Scenario, &created, &run.EntryCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, trace.Trace{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, trace.Trace{}, fmt.Errorf("load run: %w", err)
	}
	run.CreatedAt = time.Unix(created, 0).UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, subscriber, kind, value, error
		FROM events
		WHERE run_id = ?
		ORDER BY seq ASC
	`, id)
	if err != nil {
		return Run{}, trace.Trace{}, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	t := trace.Trace{Scenario: run.Scenario, Entries: []trace.Entry{}}
	for rows.Next() {
		var e trace.Entry
		if err := rows.Scan(&e.Seq, &e.Subscriber, &e.Kind, &e.Value, &e.Error); err != nil {
			return Run{}, trace.Trace{}, fmt.Errorf("scan event: %w", err)
		}
		t.Entries = append(t.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return Run{}, trace.Trace{}, fmt.Errorf("iterate events: %w", err)
	}

	return run, t, nil
}

// ListRuns returns every recorded run, oldest first. An empty scenario
// lists all scenarios.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRuns(ctx context.Context, scenario string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, created_at, entry_count
		FROM runs
		WHERE ? = '' OR scenario = ?
		ORDER BY created_at ASC, id COLLATE BINARY ASC
	`, scenario, scenario)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			r       Run
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Scenario, &created, &r.EntryCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0).UTC()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and its entries.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}
