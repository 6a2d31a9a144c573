package events

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

type EventParams struct {
	Type      *EventType
	WorkoutID string
	From      *time.Time
	To        *time.Time
}

func (p EventParams) args() []any {
	return []any{p.Type, p.WorkoutID, p.From, p.To}
}

func (p EventParams) setSpanAttributes(span trace.Span) {
	if p.Type != nil {
		span.SetAttributes(attribute.String("type", p.Type.String()))
	}
	if p.WorkoutID != "" {
		span.SetAttributes(attribute.String("workout.id", p.WorkoutID))
	}
	if p.From != nil {
		span.SetAttributes(attribute.String("from", p.From.Format(time.RFC3339)))
	}
	if p.To != nil {
		span.SetAttributes(attribute.String("to", p.To.Format(time.RFC3339)))
	}
}

type ListParams struct {
	EventParams
	Page int
	Size int
}

func (p ListParams) offset() int {
	if p.Page < 1 {
		return 0
	}
	return p.Size * (p.Page - 1)
}

// filter placeholders $1..$4 follow EventParams.args
const eventsFilter = `
	WHERE ($1::text IS NULL OR type = $1)
	  AND ($2::text = '' OR data->>'workout_id' = $2)
	  AND ($3::timestamptz IS NULL OR timestamp >= $3)
	  AND ($4::timestamptz IS NULL OR timestamp <= $4)`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.events.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", event.Type.String()))

	err = r.db.QueryRow(ctx, `
		INSERT INTO gymstats_event (type, data, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id
	`, event.Type, event.Data, event.Timestamp).Scan(&event.ID)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &event, nil
}

// List returns the newest events first.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	params.setSpanAttributes(span)

	args := append(params.args(), params.Size, params.offset())
	rows, err := r.db.Query(ctx, `
		SELECT id, type, timestamp, data
		FROM gymstats_event`+eventsFilter+`
		ORDER BY timestamp DESC
		LIMIT $5 OFFSET $6`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	events, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[Event])
	if err != nil {
		return nil, fmt.Errorf("collect events: %w", err)
	}
	return events, nil
}

func (r *Repo) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.events.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	params.setSpanAttributes(span)

	var count int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM gymstats_event`+eventsFilter, params.args()...).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
