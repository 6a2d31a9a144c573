package templates

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

// Plan is a training plan row joined with its author and day count.
type Plan struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Goal        string    `json:"goal"`
	AuthorID    int       `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	DayCount    int       `json:"dayCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PlanDay struct {
	DayNumber int    `json:"dayNumber"`
	WorkoutID string `json:"workoutId"`
}

type NewPlan struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Goal        string    `json:"goal"`
	AuthorID    int       `json:"authorId"`
	Days        []PlanDay `json:"days"`
}

type ListPlansParams struct {
	Search string
	Goal   string
}

func (r *Repo) ListPlans(ctx context.Context, params ListPlansParams) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training_plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.Search != "" {
		span.SetAttributes(attribute.String("params.search", params.Search))
	}
	if params.Goal != "" {
		span.SetAttributes(attribute.String("params.goal", params.Goal))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    p.id, p.name, p.description, p.goal, a.id, a.name, COUNT(d.plan_id), p.created_at
			FROM training_plan p
			JOIN plan_author a ON a.id = p.author_id
			LEFT JOIN training_plan_day d ON d.plan_id = p.id
			WHERE ($1::text = '' OR p.name ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%')
			  AND ($2::text = '' OR p.goal = $2)
			GROUP BY p.id, a.id
			ORDER BY p.created_at DESC
		`,
		params.Search,
		params.Goal,
	)
	if err != nil {
		return nil, fmt.Errorf("training plans [query]: %w", err)
	}
	defer rows.Close()

	plans := []Plan{}
	for rows.Next() {
		var plan Plan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Description,
			&plan.Goal,
			&plan.AuthorID,
			&plan.AuthorName,
			&plan.DayCount,
			&plan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("training plans [rows scan]: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func (r *Repo) AddPlan(ctx context.Context, plan NewPlan) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training_plans.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return -1, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var id int
	if err = tx.QueryRow(
		ctx,
		`
			INSERT INTO training_plan (name, description, goal, author_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
		plan.Name, plan.Description, plan.Goal, plan.AuthorID, time.Now(),
	).Scan(&id); err != nil {
		return -1, fmt.Errorf("insert training plan: %w", err)
	}

	batch := &pgx.Batch{}
	for _, day := range plan.Days {
		batch.Queue(
			`INSERT INTO training_plan_day (plan_id, day_number, workout_id) VALUES ($1, $2, $3)`,
			id, day.DayNumber, day.WorkoutID,
		)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return -1, fmt.Errorf("insert training plan days: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return -1, fmt.Errorf("commit tx: %w", err)
	}
	return id, nil
}
