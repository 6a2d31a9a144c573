package history

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=history_test

type historyRepo interface {
	GetPastSessions(ctx context.Context, exerciseID string) (_ []workout.PastSession, err error)
	ListSessions(ctx context.Context, params ListSessionsParams) (_ []SessionRecord, err error)
	GetSession(ctx context.Context, id string) (_ workout.Summary, err error)
}

type Handler struct {
	repo     historyRepo
	analyzer *Analyzer
}

func NewHandler(repo historyRepo, analyzer *Analyzer) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: analyzer,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/gymstats/history/sessions", h.HandleListSessions).Methods("GET", "OPTIONS").Name("list-history-sessions")
	router.HandleFunc("/gymstats/history/sessions/{id}", h.HandleGetSession).Methods("GET", "OPTIONS").Name("get-history-session")
	router.HandleFunc("/gymstats/history/exercises/{exerciseId}", h.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("get-exercise-history")
	router.HandleFunc("/gymstats/history/exercises/{exerciseId}/progress", h.HandleExerciseProgress).Methods("GET", "OPTIONS").Name("get-exercise-progress")
	router.HandleFunc("/gymstats/history/stats/duration", h.HandleAvgDuration).Methods("GET", "OPTIONS").Name("get-avg-session-duration")
	router.HandleFunc("/gymstats/history/stats/percentages", h.HandleExercisePercentages).Methods("GET", "OPTIONS").Name("get-exercise-percentages")
}

// parseListParams reads workoutId, from, to (2006-01-02) and limit query params.
func parseListParams(r *http.Request) (ListSessionsParams, error) {
	query := r.URL.Query()
	params := ListSessionsParams{
		WorkoutID: query.Get("workoutId"),
	}

	if from := query.Get("from"); from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return ListSessionsParams{}, errors.New("invalid from date")
		}
		params.From = t
	}
	if to := query.Get("to"); to != "" {
		t, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return ListSessionsParams{}, errors.New("invalid to date")
		}
		params.To = t.AddDate(0, 0, 1)
	}
	if limit := query.Get("limit"); limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil || l <= 0 {
			return ListSessionsParams{}, errors.New("invalid limit")
		}
		params.Limit = l
	}

	return params, nil
}

func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.list_sessions")
	defer span.End()

	params, err := parseListParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessions, err := h.repo.ListSessions(ctx, params)
	if err != nil {
		log.Errorf("list history sessions: %s", err)
		http.Error(w, "list sessions failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, sessions, http.StatusOK)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.get_session")
	defer span.End()

	id := mux.Vars(r)["id"]
	summary, err := h.repo.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("get history session %s: %s", id, err)
		http.Error(w, "get session failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.exercise_history")
	defer span.End()

	exerciseID := mux.Vars(r)["exerciseId"]
	pastSessions, err := h.repo.GetPastSessions(ctx, exerciseID)
	if err != nil {
		log.Errorf("get exercise history %s: %s", exerciseID, err)
		http.Error(w, "get exercise history failed", http.StatusInternalServerError)
		return
	}
	if pastSessions == nil {
		pastSessions = []workout.PastSession{}
	}

	pkg.WriteJSON(w, pastSessions, http.StatusOK)
}

func (h *Handler) HandleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.exercise_progress")
	defer span.End()

	exerciseID := mux.Vars(r)["exerciseId"]
	progress, err := h.analyzer.ExerciseProgress(ctx, exerciseID)
	if err != nil {
		log.Errorf("get exercise progress %s: %s", exerciseID, err)
		http.Error(w, "get exercise progress failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, progress, http.StatusOK)
}

func (h *Handler) HandleAvgDuration(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.avg_duration")
	defer span.End()

	params, err := parseListParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	avgDuration, err := h.analyzer.AvgSessionDuration(ctx, params)
	if err != nil {
		log.Errorf("get avg session duration: %s", err)
		http.Error(w, "get avg duration failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, avgDuration, http.StatusOK)
}

func (h *Handler) HandleExercisePercentages(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.exercise_percentages")
	defer span.End()

	percentages, err := h.analyzer.ExercisePercentages(ctx)
	if err != nil {
		log.Errorf("get exercise percentages: %s", err)
		http.Error(w, "get exercise percentages failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, percentages, http.StatusOK)
}
