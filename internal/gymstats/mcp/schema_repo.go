package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

var errNoDatabase = errors.New("no database configured")

// SchemaRepo provides the workout tables layout from information_schema.
type SchemaRepo interface {
	GetGymstatsColumns(ctx context.Context) ([]SchemaColumn, error)
}

// SchemaColumn is one information_schema.columns row. Field order matches the query.
type SchemaColumn struct {
	TableSchema string
	TableName   string
	ColumnName  string
	DataType    string
	IsNullable  string
	ColumnDef   *string
}

// tables created by the db migrations
var gymstatsTables = []string{
	"workout_template",
	"workout_template_exercise",
	"plan_author",
	"training_plan",
	"training_plan_day",
	"exercise_type",
	"workout_session",
	"workout_set",
	"gymstats_event",
}

const columnsQuery = `
	SELECT table_schema, table_name, column_name, data_type, is_nullable, column_default
	FROM information_schema.columns
	WHERE table_schema = 'public'
	  AND table_name = ANY($1)
	ORDER BY table_name, ordinal_position`

type poolSchemaRepo struct {
	pool *pgxpool.Pool
}

func NewPoolSchemaRepo(pool *pgxpool.Pool) SchemaRepo {
	return &poolSchemaRepo{pool: pool}
}

func (r *poolSchemaRepo) GetGymstatsColumns(ctx context.Context) (_ []SchemaColumn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mcp.schema_columns")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if r.pool == nil {
		return nil, errNoDatabase
	}

	rows, err := r.pool.Query(ctx, columnsQuery, gymstatsTables)
	if err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}

	cols, err := pgx.CollectRows(rows, pgx.RowToStructByPos[SchemaColumn])
	if err != nil {
		return nil, fmt.Errorf("collect columns: %w", err)
	}
	span.SetAttributes(attribute.Int("columns.count", len(cols)))

	return cols, nil
}
