package autosave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

// SQLiteStore keeps snapshots in a local SQLite file, for single node setups
// running without redis.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create autosave dir for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open autosave db: %w", err)
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS autosave_snapshot (
		workout_id    TEXT PRIMARY KEY,
		template_name TEXT NOT NULL,
		payload       TEXT NOT NULL,
		saved_at      TIMESTAMP NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create autosave table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, workoutID string) (_ *workout.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "autosave.sqlite.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var payload string
	err = s.db.QueryRowContext(ctx,
		`SELECT payload FROM autosave_snapshot WHERE workout_id = ?`, workoutID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, workout.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot [%s]: %w", workoutID, err)
	}

	return decodeSnapshot([]byte(payload))
}

func (s *SQLiteStore) Put(ctx context.Context, workoutID string, snapshot workout.Snapshot) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "autosave.sqlite.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	savedAt := snapshot.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO autosave_snapshot (workout_id, template_name, payload, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(workout_id) DO UPDATE SET
			template_name = excluded.template_name,
			payload = excluded.payload,
			saved_at = excluded.saved_at`,
		workoutID, snapshot.TemplateName, string(raw), savedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("put snapshot [%s]: %w", workoutID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, workoutID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "autosave.sqlite.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM autosave_snapshot WHERE workout_id = ?`, workoutID); err != nil {
		return fmt.Errorf("delete snapshot [%s]: %w", workoutID, err)
	}
	return nil
}

// List returns the stored snapshots, most recently saved first.
func (s *SQLiteStore) List(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "autosave.sqlite.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.QueryContext(ctx, `SELECT workout_id, payload FROM autosave_snapshot`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		snapshot, err := decodeSnapshot([]byte(payload))
		if err != nil {
			log.Warnf("skipping corrupted autosave [%s]: %s", id, err)
			continue
		}
		entries = append(entries, entryFromSnapshot(id, *snapshot))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	sortEntries(entries)
	return entries, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
