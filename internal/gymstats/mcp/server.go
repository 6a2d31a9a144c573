package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with gymstats tools: schema, live sessions, progression
// suggestions, autosaves, exercise history and progress, exercise types, exercise
// percentages and avg session duration.
// Used by the main backend when mounting MCP at /mcp (internal/server) and by cmd/gymstats_mcp.
func NewServer(params ContextServiceParams) *mcp.Server {
	h := NewHandler(NewContextService(params))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "gymstats-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_gymstats_context",
		Description: "Returns the DB schema for gymstats-related tables (templates, training plans, exercise types, workout sessions and sets, events): table names, columns, types, nullable, default. Use when you need the actual backend schema.",
	}, h.GetGymstatsContextTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_active_session",
		Description: "Returns the live workout session state (current exercise, recorded sets, rest countdown, elapsed time). Optional arg: workout_id. Without it, all live sessions are returned.",
	}, h.GetActiveSessionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_progression_suggestion",
		Description: "Returns the progression suggestion for the next set of an exercise, with the reasoning behind it. Arg: exercise_id (e.g. bench_press).",
	}, h.GetProgressionSuggestionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_autosaves",
		Description: "Returns the stored autosave snapshots of unfinished workouts (workout id, template, sets recorded, elapsed time, saved at).",
	}, h.ListAutosavesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_history",
		Description: "Returns the most recent past sessions containing an exercise, with the sets performed in each. Arg: exercise_id (e.g. bench_press).",
	}, h.GetExerciseHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_progress",
		Description: "Returns per-day stats (avg and max weight, avg reps, total volume, sets) for an exercise. Arg: exercise_id. Use when you need progression or volume over time (e.g. how has bench press improved).",
	}, h.GetExerciseProgressTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_types",
		Description: "Returns all exercise types (id, name, category, muscle group, instructions). Optional filters: muscle_group, category, exercise_id.",
	}, h.GetExerciseTypesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_percentages",
		Description: "Returns the share of all recorded sets per exercise. Use when you want to see workout mix or balance.",
	}, h.GetExercisePercentagesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_avg_session_duration",
		Description: "Returns the average workout duration (overall and per day) for a date range. Args: from_date, to_date (YYYY-MM-DD); optional: workout_id.",
	}, h.GetAvgSessionDurationTool())

	return s
}

// NewHTTPHandler serves the MCP server over streamable HTTP.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
