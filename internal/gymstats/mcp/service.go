package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/gymtracker/internal/gymstats/autosave"
	"github.com/2beens/gymtracker/internal/gymstats/exercises"
	"github.com/2beens/gymtracker/internal/gymstats/history"
	"github.com/2beens/gymtracker/internal/gymstats/progression"
	"github.com/2beens/gymtracker/internal/gymstats/session"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

// LiveSessions exposes the in-memory sessions and suggestions of the session engine.
type LiveSessions interface {
	States() []session.State
	SuggestFor(ctx context.Context, exerciseID string) (progression.Suggestion, error)
}

type AutosaveLister interface {
	List(ctx context.Context) ([]autosave.Entry, error)
}

type HistoryRepo interface {
	GetPastSessions(ctx context.Context, exerciseID string) ([]workout.PastSession, error)
}

type historyAnalyzer interface {
	ExerciseProgress(ctx context.Context, exerciseID string) ([]history.ProgressData, error)
	ExercisePercentages(ctx context.Context) (map[string]history.ExercisePercentageInfo, error)
	AvgSessionDuration(ctx context.Context, params history.ListSessionsParams) (*history.AvgDurationResponse, error)
}

type ExerciseTypesRepo interface {
	GetExerciseTypes(ctx context.Context, params exercises.GetExerciseTypesParams) ([]exercises.ExerciseType, error)
}

// contextService provides gymstats context data (schema, live sessions, autosaves, history, analytics).
// Used by Handler for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	ListActiveSessions() []session.State
	GetActiveSession(workoutID string) (session.State, error)
	GetProgressionSuggestion(ctx context.Context, exerciseID string) (progression.Suggestion, error)
	ListAutosaves(ctx context.Context) ([]autosave.Entry, error)
	GetExerciseHistory(ctx context.Context, exerciseID string) ([]workout.PastSession, error)
	GetExerciseProgress(ctx context.Context, exerciseID string) ([]history.ProgressData, error)
	GetExerciseTypes(ctx context.Context, params exercises.GetExerciseTypesParams) ([]exercises.ExerciseType, error)
	GetExercisePercentages(ctx context.Context) (map[string]history.ExercisePercentageInfo, error)
	GetAvgSessionDuration(ctx context.Context, params history.ListSessionsParams) (*history.AvgDurationResponse, error)
}

type ContextServiceParams struct {
	Schema        SchemaRepo
	Sessions      LiveSessions
	Autosaves     AutosaveLister
	History       HistoryRepo
	Analyzer      historyAnalyzer
	ExerciseTypes ExerciseTypesRepo
}

// ContextService holds dependencies and implements the gymstats context business logic.
type ContextService struct {
	schema        SchemaRepo
	sessions      LiveSessions
	autosaves     AutosaveLister
	history       HistoryRepo
	analyzer      historyAnalyzer
	exerciseTypes ExerciseTypesRepo
}

// NewContextService builds a ContextService with the given dependencies.
func NewContextService(params ContextServiceParams) *ContextService {
	return &ContextService{
		schema:        params.Schema,
		sessions:      params.Sessions,
		autosaves:     params.Autosaves,
		history:       params.History,
		analyzer:      params.Analyzer,
		exerciseTypes: params.ExerciseTypes,
	}
}

// GetSchema returns the DB schema (table names, columns, types) for gymstats-related tables.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetGymstatsColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatGymstatsSchema(cols), nil
}

func formatGymstatsSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Gymstats DB Schema\n\nNo gymstats tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Gymstats DB Schema\n\n")
	b.WriteString(fmt.Sprintf("Tables: %s (schema: public).\n\n", strings.Join(tableOrder, ", ")))

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

// ListActiveSessions returns the state of all sessions currently loaded in memory.
func (s *ContextService) ListActiveSessions() []session.State {
	return s.sessions.States()
}

// GetActiveSession returns the state of the live session of a workout.
func (s *ContextService) GetActiveSession(workoutID string) (session.State, error) {
	for _, state := range s.sessions.States() {
		if state.WorkoutID == workoutID {
			return state, nil
		}
	}
	return session.State{}, session.ErrSessionNotFound
}

func (s *ContextService) GetProgressionSuggestion(ctx context.Context, exerciseID string) (progression.Suggestion, error) {
	return s.sessions.SuggestFor(ctx, exerciseID)
}

// ListAutosaves returns the stored snapshots, most recent first.
func (s *ContextService) ListAutosaves(ctx context.Context) ([]autosave.Entry, error) {
	return s.autosaves.List(ctx)
}

// GetExerciseHistory returns the most recent past sessions containing the exercise.
func (s *ContextService) GetExerciseHistory(ctx context.Context, exerciseID string) ([]workout.PastSession, error) {
	return s.history.GetPastSessions(ctx, exerciseID)
}

// GetExerciseProgress returns per-day stats (avg and max weight, avg reps, volume, sets) for the exercise.
func (s *ContextService) GetExerciseProgress(ctx context.Context, exerciseID string) ([]history.ProgressData, error) {
	return s.analyzer.ExerciseProgress(ctx, exerciseID)
}

// GetExerciseTypes returns exercise types, optionally filtered.
func (s *ContextService) GetExerciseTypes(ctx context.Context, params exercises.GetExerciseTypesParams) ([]exercises.ExerciseType, error) {
	return s.exerciseTypes.GetExerciseTypes(ctx, params)
}

// GetExercisePercentages returns the share of recorded sets per exercise.
func (s *ContextService) GetExercisePercentages(ctx context.Context) (map[string]history.ExercisePercentageInfo, error) {
	return s.analyzer.ExercisePercentages(ctx)
}

// GetAvgSessionDuration returns the average workout duration (overall and per day) for the given period.
func (s *ContextService) GetAvgSessionDuration(ctx context.Context, params history.ListSessionsParams) (*history.AvgDurationResponse, error) {
	return s.analyzer.AvgSessionDuration(ctx, params)
}
