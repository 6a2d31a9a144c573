package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

// Repo stores finished workouts and serves them back as exercise history.
type Repo struct {
	db                *pgxpool.Pool
	pastSessionsLimit int
}

func NewRepo(db *pgxpool.Pool, pastSessionsLimit int) *Repo {
	if pastSessionsLimit <= 0 {
		pastSessionsLimit = DefaultPastSessionsLimit
	}
	return &Repo{
		db:                db,
		pastSessionsLimit: pastSessionsLimit,
	}
}

// Submit stores the summary and all of its sets in one transaction.
// Submitting the same summary twice is a no op.
func (r *Repo) Submit(ctx context.Context, summary workout.Summary) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("summary.id", summary.ID),
		attribute.String("workout.id", summary.WorkoutID),
	)

	exercisesJson, err := json.Marshal(summary.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}
	notesJson, err := json.Marshal(summary.ExerciseNotes)
	if err != nil {
		return fmt.Errorf("marshal exercise notes: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`
			INSERT INTO workout_session
			    (id, workout_id, template_id, template_name, start_time, end_time,
			     total_time_seconds, exercises, exercise_notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
		summary.ID, summary.WorkoutID, summary.TemplateID, summary.TemplateName,
		summary.StartTime, summary.EndTime, summary.TotalTimeSeconds, exercisesJson, notesJson,
	); err != nil {
		if pkg.IsUniqueViolationError(err) {
			log.Warnf("history: summary %s already submitted", summary.ID)
			_ = tx.Rollback(ctx)
			return nil
		}
		return fmt.Errorf("insert workout session: %w", err)
	}

	batch := &pgx.Batch{}
	for exerciseID, sets := range summary.RecordedSets {
		for _, set := range sets {
			var notes *string
			if set.Notes != "" {
				notes = &set.Notes
			}
			batch.Queue(
				`
					INSERT INTO workout_set
					    (session_id, exercise_id, set_number, weight, reps, rpe, notes)
					VALUES ($1, $2, $3, $4, $5, $6, $7)
				`,
				summary.ID, exerciseID, set.SetNumber, set.Weight.String(), set.Reps.String(), set.RPE, notes,
			)
		}
	}
	if batch.Len() > 0 {
		if err = tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert workout sets: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	log.WithField("workout", summary.WorkoutID).Debugf("history: summary %s stored, %d sets", summary.ID, batch.Len())
	return nil
}

// GetPastSessions returns the most recent sessions that include exerciseID, newest first,
// each carrying only the sets of that exercise in set order.
func (r *Repo) GetPastSessions(ctx context.Context, exerciseID string) (_ []workout.PastSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.past_sessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    ws.id, ws.start_time, s.weight, s.reps
			FROM workout_set s
			JOIN workout_session ws ON ws.id = s.session_id
			WHERE s.exercise_id = $1
			  AND ws.id IN (
			      SELECT ws2.id
			      FROM workout_session ws2
			      WHERE EXISTS (
			          SELECT 1 FROM workout_set s2
			          WHERE s2.session_id = ws2.id AND s2.exercise_id = $1
			      )
			      ORDER BY ws2.start_time DESC
			      LIMIT $2
			  )
			ORDER BY ws.start_time DESC, ws.id, s.set_number
		`,
		exerciseID, r.pastSessionsLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("past sessions [query]: %w", err)
	}
	defer rows.Close()

	var (
		pastSessions []workout.PastSession
		lastID       string
	)
	for rows.Next() {
		var (
			sessionID   string
			past        workout.PastSession
			weight, rep string
		)
		if err := rows.Scan(&sessionID, &past.Date, &weight, &rep); err != nil {
			return nil, fmt.Errorf("past sessions [rows scan]: %w", err)
		}
		if sessionID != lastID {
			pastSessions = append(pastSessions, past)
			lastID = sessionID
		}
		cur := &pastSessions[len(pastSessions)-1]
		cur.SetsPerformed = append(cur.SetsPerformed, workout.PerformedSet{
			Weight: workout.ParseMeasurement(weight),
			Reps:   workout.ParseMeasurement(rep),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("past sessions [rows]: %w", err)
	}

	return pastSessions, nil
}

func (r *Repo) ListSessions(ctx context.Context, params ListSessionsParams) (_ []SessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.list_sessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var from, to *time.Time
	if !params.From.IsZero() {
		from = &params.From
	}
	if !params.To.IsZero() {
		to = &params.To
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    ws.id, ws.workout_id, ws.template_id, ws.template_name,
			    ws.start_time, ws.end_time, ws.total_time_seconds, COUNT(s.id)
			FROM workout_session ws
			LEFT JOIN workout_set s ON s.session_id = ws.id
			WHERE ($1::text = '' OR ws.workout_id = $1)
			  AND ($2::timestamptz IS NULL OR ws.start_time >= $2)
			  AND ($3::timestamptz IS NULL OR ws.start_time < $3)
			GROUP BY ws.id
			ORDER BY ws.start_time DESC
			LIMIT $4
		`,
		params.WorkoutID, from, to, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions [query]: %w", err)
	}
	defer rows.Close()

	records := []SessionRecord{}
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.WorkoutID,
			&rec.TemplateID,
			&rec.TemplateName,
			&rec.StartTime,
			&rec.EndTime,
			&rec.TotalTimeSeconds,
			&rec.SetCount,
		); err != nil {
			return nil, fmt.Errorf("list sessions [rows scan]: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions [rows]: %w", err)
	}

	return records, nil
}

// GetSession rebuilds the full summary of a stored session.
func (r *Repo) GetSession(ctx context.Context, id string) (_ workout.Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.get_session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("summary.id", id))

	summary := workout.Summary{ID: id}
	var exercisesJson, notesJson []byte
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    workout_id, template_id, template_name, start_time, end_time,
			    total_time_seconds, exercises, exercise_notes
			FROM workout_session
			WHERE id = $1
		`,
		id,
	).Scan(
		&summary.WorkoutID,
		&summary.TemplateID,
		&summary.TemplateName,
		&summary.StartTime,
		&summary.EndTime,
		&summary.TotalTimeSeconds,
		&exercisesJson,
		&notesJson,
	)
	if pkg.IsNoRows(err) {
		return workout.Summary{}, ErrSessionNotFound
	}
	if err != nil {
		return workout.Summary{}, fmt.Errorf("get session [query row]: %w", err)
	}

	if err := json.Unmarshal(exercisesJson, &summary.Exercises); err != nil {
		return workout.Summary{}, fmt.Errorf("unmarshal exercises: %w", err)
	}
	if err := json.Unmarshal(notesJson, &summary.ExerciseNotes); err != nil {
		return workout.Summary{}, fmt.Errorf("unmarshal exercise notes: %w", err)
	}

	entries, err := r.listSetEntries(ctx, `s.session_id = $1`, id)
	if err != nil {
		return workout.Summary{}, err
	}
	summary.RecordedSets = workout.RecordedSets{}
	for _, e := range entries {
		summary.RecordedSets[e.ExerciseID] = append(summary.RecordedSets[e.ExerciseID], workout.RecordedSet{
			SetNumber: e.SetNumber,
			Weight:    e.Weight,
			Reps:      e.Reps,
			RPE:       e.RPE,
		})
	}

	return summary, nil
}

// ListSetEntries returns every stored set of the exercise, oldest first.
func (r *Repo) ListSetEntries(ctx context.Context, exerciseID string) (_ []SetEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.list_set_entries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	if exerciseID == "" {
		return r.listSetEntries(ctx, `TRUE`)
	}
	return r.listSetEntries(ctx, `s.exercise_id = $1`, exerciseID)
}

func (r *Repo) listSetEntries(ctx context.Context, where string, args ...any) ([]SetEntry, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    s.session_id, s.exercise_id, s.set_number, s.weight, s.reps, s.rpe, ws.start_time
			FROM workout_set s
			JOIN workout_session ws ON ws.id = s.session_id
			WHERE `+where+`
			ORDER BY ws.start_time, s.exercise_id, s.set_number
		`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("set entries [query]: %w", err)
	}
	defer rows.Close()

	var entries []SetEntry
	for rows.Next() {
		var (
			e            SetEntry
			weight, reps string
		)
		if err := rows.Scan(&e.SessionID, &e.ExerciseID, &e.SetNumber, &weight, &reps, &e.RPE, &e.PerformedAt); err != nil {
			return nil, fmt.Errorf("set entries [rows scan]: %w", err)
		}
		e.Weight = workout.ParseMeasurement(weight)
		e.Reps = workout.ParseMeasurement(reps)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("set entries [rows]: %w", err)
	}

	return entries, nil
}
