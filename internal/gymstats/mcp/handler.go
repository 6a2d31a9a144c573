package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/exercises"
	"github.com/2beens/gymtracker/internal/gymstats/history"
	"github.com/2beens/gymtracker/internal/gymstats/session"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

// NewHandler builds a handler with the given service.
func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetGymstatsContextTool returns the MCP tool handler for get_gymstats_context.
func (h *Handler) GetGymstatsContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// ActiveSessionInput is the input for get_active_session.
type ActiveSessionInput struct {
	WorkoutID string `json:"workout_id,omitempty" jsonschema:"Workout id (e.g. push-day). When empty, all live sessions are returned"`
}

// GetActiveSessionTool returns the MCP tool handler for get_active_session.
func (h *Handler) GetActiveSessionTool() func(context.Context, *mcp.CallToolRequest, ActiveSessionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ActiveSessionInput) (*mcp.CallToolResult, any, error) {
		workoutID := strings.TrimSpace(in.WorkoutID)
		if workoutID == "" {
			return jsonResult(h.service.ListActiveSessions()), nil, nil
		}

		state, err := h.service.GetActiveSession(workoutID)
		if errors.Is(err, session.ErrSessionNotFound) {
			return errorResult("No active session for workout " + workoutID), nil, nil
		}
		if err != nil {
			return errorResult("Error fetching session: " + err.Error()), nil, nil
		}
		return jsonResult(state), nil, nil
	}
}

// ExerciseInput is the input for the per-exercise tools.
type ExerciseInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise type id (e.g. bench_press)"`
}

// GetProgressionSuggestionTool returns the MCP tool handler for get_progression_suggestion.
func (h *Handler) GetProgressionSuggestionTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.ExerciseID) == "" {
			return errorResult("exercise_id is required"), nil, nil
		}
		suggestion, err := h.service.GetProgressionSuggestion(ctx, in.ExerciseID)
		if err != nil {
			return errorResult("Error deriving suggestion: " + err.Error()), nil, nil
		}
		return jsonResult(suggestion), nil, nil
	}
}

// ListAutosavesTool returns the MCP tool handler for list_autosaves.
func (h *Handler) ListAutosavesTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		entries, err := h.service.ListAutosaves(ctx)
		if err != nil {
			return errorResult("Error listing autosaves: " + err.Error()), nil, nil
		}
		return jsonResult(entries), nil, nil
	}
}

// GetExerciseHistoryTool returns the MCP tool handler for get_exercise_history.
func (h *Handler) GetExerciseHistoryTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.ExerciseID) == "" {
			return errorResult("exercise_id is required"), nil, nil
		}
		sessions, err := h.service.GetExerciseHistory(ctx, in.ExerciseID)
		if err != nil {
			return errorResult("Error fetching exercise history: " + err.Error()), nil, nil
		}
		return jsonResult(sessions), nil, nil
	}
}

// GetExerciseProgressTool returns the MCP tool handler for get_exercise_progress.
func (h *Handler) GetExerciseProgressTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.ExerciseID) == "" {
			return errorResult("exercise_id is required"), nil, nil
		}
		progress, err := h.service.GetExerciseProgress(ctx, in.ExerciseID)
		if err != nil {
			return errorResult("Error fetching exercise progress: " + err.Error()), nil, nil
		}
		return jsonResult(progress), nil, nil
	}
}

// ExerciseTypesInput is the input for get_exercise_types.
type ExerciseTypesInput struct {
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Filter by muscle group (e.g. chest, legs)"`
	Category    string `json:"category,omitempty" jsonschema:"Filter by category (e.g. Strength, Cardio)"`
	ExerciseID  string `json:"exercise_id,omitempty" jsonschema:"Filter by exercise type id (e.g. bench_press)"`
}

// GetExerciseTypesTool returns the MCP tool handler for get_exercise_types.
func (h *Handler) GetExerciseTypesTool() func(context.Context, *mcp.CallToolRequest, ExerciseTypesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseTypesInput) (*mcp.CallToolResult, any, error) {
		types, err := h.service.GetExerciseTypes(ctx, exercises.GetExerciseTypesParams{
			MuscleGroup: in.MuscleGroup,
			Category:    in.Category,
			ExerciseId:  in.ExerciseID,
		})
		if err != nil {
			return errorResult("Error fetching exercise types: " + err.Error()), nil, nil
		}
		return jsonResult(types), nil, nil
	}
}

// GetExercisePercentagesTool returns the MCP tool handler for get_exercise_percentages.
func (h *Handler) GetExercisePercentagesTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		percentages, err := h.service.GetExercisePercentages(ctx)
		if err != nil {
			return errorResult("Error fetching exercise percentages: " + err.Error()), nil, nil
		}
		return jsonResult(percentages), nil, nil
	}
}

// TimeRangeInput is the input for get_avg_session_duration.
type TimeRangeInput struct {
	FromDate  string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate    string `json:"to_date" jsonschema:"End date (YYYY-MM-DD)"`
	WorkoutID string `json:"workout_id,omitempty" jsonschema:"Filter by workout id (e.g. push-day)"`
}

// GetAvgSessionDurationTool returns the MCP tool handler for get_avg_session_duration.
func (h *Handler) GetAvgSessionDurationTool() func(context.Context, *mcp.CallToolRequest, TimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TimeRangeInput) (*mcp.CallToolResult, any, error) {
		from, err := time.Parse(time.DateOnly, in.FromDate)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		to, err := time.Parse(time.DateOnly, in.ToDate)
		if err != nil {
			return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
		}

		resp, err := h.service.GetAvgSessionDuration(ctx, history.ListSessionsParams{
			WorkoutID: in.WorkoutID,
			From:      from,
			// to date is inclusive
			To: to.AddDate(0, 0, 1),
		})
		if err != nil {
			return errorResult("Error fetching avg session duration: " + err.Error()), nil, nil
		}
		return jsonResult(resp), nil, nil
	}
}
