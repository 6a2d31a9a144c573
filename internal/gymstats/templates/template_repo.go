package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetTemplateByID(ctx context.Context, workoutID string) (_ workout.Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	template := workout.Template{ID: workoutID}
	err = r.db.QueryRow(
		ctx,
		`SELECT name FROM workout_template WHERE id = $1`,
		workoutID,
	).Scan(&template.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return workout.Template{}, workout.ErrTemplateNotFound
	}
	if err != nil {
		return workout.Template{}, fmt.Errorf("workout template [query row]: %w", err)
	}

	template.Exercises, err = r.templateExercises(ctx, workoutID)
	if err != nil {
		return workout.Template{}, err
	}

	return template, nil
}

func (r *Repo) templateExercises(ctx context.Context, workoutID string) ([]workout.ExerciseSlot, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    exercise_id, default_sets, default_reps, default_rest_seconds
			FROM workout_template_exercise
			WHERE template_id = $1
			ORDER BY position
		`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("template exercises [query]: %w", err)
	}
	defer rows.Close()

	var slots []workout.ExerciseSlot
	for rows.Next() {
		var slot workout.ExerciseSlot
		var defaultReps *string
		if err := rows.Scan(
			&slot.ExerciseID,
			&slot.DefaultSets,
			&defaultReps,
			&slot.DefaultRestSeconds,
		); err != nil {
			return nil, fmt.Errorf("template exercises [rows scan]: %w", err)
		}
		if defaultReps != nil {
			slot.DefaultReps = *defaultReps
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("template exercises [rows]: %w", err)
	}

	return slots, nil
}

type TemplateInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ExerciseCount int    `json:"exerciseCount"`
}

func (r *Repo) ListTemplates(ctx context.Context) (_ []TemplateInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    t.id, t.name, COUNT(e.template_id)
			FROM workout_template t
			LEFT JOIN workout_template_exercise e ON e.template_id = t.id
			GROUP BY t.id, t.name
			ORDER BY t.name
		`,
	)
	if err != nil {
		return nil, fmt.Errorf("list templates [query]: %w", err)
	}
	defer rows.Close()

	var infos []TemplateInfo
	for rows.Next() {
		var info TemplateInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.ExerciseCount); err != nil {
			return nil, fmt.Errorf("list templates [rows scan]: %w", err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// SaveTemplate inserts or replaces a template together with its exercise slots.
func (r *Repo) SaveTemplate(ctx context.Context, template workout.Template) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

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
			INSERT INTO workout_template (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		`,
		template.ID, template.Name,
	); err != nil {
		return fmt.Errorf("upsert template: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM workout_template_exercise WHERE template_id = $1`, template.ID); err != nil {
		return fmt.Errorf("clear template exercises: %w", err)
	}

	batch := &pgx.Batch{}
	for i, slot := range template.Exercises {
		var defaultReps *string
		if slot.DefaultReps != "" {
			defaultReps = &slot.DefaultReps
		}
		batch.Queue(
			`
				INSERT INTO workout_template_exercise
				    (template_id, position, exercise_id, default_sets, default_reps, default_rest_seconds)
				VALUES ($1, $2, $3, $4, $5, $6)
			`,
			template.ID, i, slot.ExerciseID, slot.DefaultSets, defaultReps, slot.DefaultRestSeconds,
		)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert template exercises: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
