package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

var ErrExerciseTypeNotFound = errors.New("exercise type not found")

type GetExerciseTypesParams struct {
	MuscleGroup string
	Category    string
	ExerciseId  string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetExerciseType(ctx context.Context, exerciseTypeID string) (_ ExerciseType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercise_types.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exerciseType ExerciseType
	err = r.db.QueryRow(
		ctx,
		`
			SELECT 
			    id, name, category, muscle_group, instructions, video_url, created_at
			FROM exercise_type
			WHERE id = $1
		`,
		exerciseTypeID,
	).Scan(
		&exerciseType.ID,
		&exerciseType.Name,
		&exerciseType.Category,
		&exerciseType.MuscleGroup,
		&exerciseType.Instructions,
		&exerciseType.VideoURL,
		&exerciseType.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ExerciseType{}, ErrExerciseTypeNotFound
	}
	if err != nil {
		return ExerciseType{}, fmt.Errorf("exercise type [query row]: %w", err)
	}

	return exerciseType, nil
}

func (r *Repo) GetExerciseTypes(ctx context.Context, params GetExerciseTypesParams) (_ []ExerciseType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercise_types.get_types")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.MuscleGroup != "" {
		span.SetAttributes(attribute.String("params.muscleGroup", params.MuscleGroup))
	}
	if params.Category != "" {
		span.SetAttributes(attribute.String("params.category", params.Category))
	}
	if params.ExerciseId != "" {
		span.SetAttributes(attribute.String("params.exerciseId", params.ExerciseId))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, name, category, muscle_group, instructions, video_url, created_at
			FROM exercise_type
			WHERE ($1::text = '' OR muscle_group = $1)
			  AND ($2::text = '' OR category = $2)
			  AND ($3::text = '' OR id = $3)
			ORDER BY name
		`,
		params.MuscleGroup,
		params.Category,
		params.ExerciseId,
	)
	if err != nil {
		return nil, fmt.Errorf("exercise types [query]: %w", err)
	}
	defer rows.Close()

	exerciseTypes := []ExerciseType{}
	for rows.Next() {
		var exerciseType ExerciseType
		err := rows.Scan(
			&exerciseType.ID,
			&exerciseType.Name,
			&exerciseType.Category,
			&exerciseType.MuscleGroup,
			&exerciseType.Instructions,
			&exerciseType.VideoURL,
			&exerciseType.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("exercise types [rows scan]: %w", err)
		}
		exerciseTypes = append(exerciseTypes, exerciseType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercise types [rows error]: %w", err)
	}

	return exerciseTypes, nil
}

func (r *Repo) AddExerciseType(ctx context.Context, exerciseType ExerciseType) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercise_types.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exerciseType.CreatedAt.IsZero() {
		exerciseType.CreatedAt = time.Now()
	}

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO exercise_type
			    (id, name, category, muscle_group, instructions, video_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
		exerciseType.ID,
		exerciseType.Name,
		exerciseType.Category,
		exerciseType.MuscleGroup,
		exerciseType.Instructions,
		exerciseType.VideoURL,
		exerciseType.CreatedAt,
	)
	return err
}

func (r *Repo) UpdateExerciseType(ctx context.Context, exerciseType ExerciseType) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercise_types.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE exercise_type
			SET name = $2, category = $3, muscle_group = $4, instructions = $5, video_url = $6
			WHERE id = $1
		`,
		exerciseType.ID,
		exerciseType.Name,
		exerciseType.Category,
		exerciseType.MuscleGroup,
		exerciseType.Instructions,
		exerciseType.VideoURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseTypeNotFound
	}

	return nil
}

func (r *Repo) DeleteExerciseType(ctx context.Context, exerciseTypeID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercise_types.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM exercise_type
			WHERE id = $1
		`,
		exerciseTypeID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseTypeNotFound
	}

	return nil
}
