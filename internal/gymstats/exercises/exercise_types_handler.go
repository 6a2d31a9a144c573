package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=exercise_types_mocks_test.go -package=exercises_test

type exerciseTypesRepo interface {
	GetExerciseType(ctx context.Context, exerciseTypeID string) (_ ExerciseType, err error)
	GetExerciseTypes(ctx context.Context, params GetExerciseTypesParams) (_ []ExerciseType, err error)
	AddExerciseType(ctx context.Context, exerciseType ExerciseType) (err error)
	UpdateExerciseType(ctx context.Context, exerciseType ExerciseType) (err error)
	DeleteExerciseType(ctx context.Context, exerciseTypeID string) (err error)
}

type catalogInvalidator interface {
	Invalidate(exerciseID string)
}

type TypesHandler struct {
	repo    exerciseTypesRepo
	catalog catalogInvalidator
}

// NewTypesHandler creates the exercise types handler. The catalog is optional, when set
// every write evicts the cached metadata of the written exercise.
func NewTypesHandler(
	repo exerciseTypesRepo,
	catalog catalogInvalidator,
) *TypesHandler {
	return &TypesHandler{
		repo:    repo,
		catalog: catalog,
	}
}

func (handler *TypesHandler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/gymstats/types", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise-types")
	router.HandleFunc("/gymstats/types", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise-type")
	router.HandleFunc("/gymstats/types", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-exercise-type")
	router.HandleFunc("/gymstats/types/{id}", handler.HandleGetOne).Methods("GET", "OPTIONS").Name("get-exercise-type")
	router.HandleFunc("/gymstats/types/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise-type")
}

func (handler *TypesHandler) decodeExerciseType(w http.ResponseWriter, r *http.Request, op string) (ExerciseType, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return ExerciseType{}, false
	}

	var exerciseType ExerciseType
	if err := json.NewDecoder(r.Body).Decode(&exerciseType); err != nil {
		log.Errorf("%s exercise type, unmarshal json params: %s", op, err)
		http.Error(w, op+" exercise type failed", http.StatusBadRequest)
		return ExerciseType{}, false
	}

	if exerciseType.ID == "" || exerciseType.MuscleGroup == "" || exerciseType.Name == "" {
		http.Error(w, "error, exercise id, muscle group, and name are required", http.StatusBadRequest)
		return ExerciseType{}, false
	}

	exerciseType.MuscleGroup = strings.ToLower(exerciseType.MuscleGroup)
	if !slices.Contains(MuscleGroups, exerciseType.MuscleGroup) {
		http.Error(w, "error, invalid muscle group", http.StatusBadRequest)
		return ExerciseType{}, false
	}

	return exerciseType, true
}

func (handler *TypesHandler) invalidate(exerciseID string) {
	if handler.catalog != nil {
		handler.catalog.Invalidate(exerciseID)
	}
}

func (handler *TypesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercise_types.new")
	defer span.End()

	exerciseType, ok := handler.decodeExerciseType(w, r, "add")
	if !ok {
		return
	}

	if exerciseType.CreatedAt.IsZero() {
		exerciseType.CreatedAt = time.Now()
	}

	if err := handler.repo.AddExerciseType(ctx, exerciseType); err != nil {
		log.Errorf("add exercise type: %s", err)
		http.Error(w, "add exercise type failed", http.StatusInternalServerError)
		return
	}
	handler.invalidate(exerciseType.ID)

	log.Debugf("new exercise type added: %+v", exerciseType)
	w.WriteHeader(http.StatusCreated)
}

func (handler *TypesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercise_types.get")
	defer span.End()

	exerciseTypes, err := handler.repo.GetExerciseTypes(ctx, GetExerciseTypesParams{
		MuscleGroup: r.URL.Query().Get("muscleGroup"),
		Category:    r.URL.Query().Get("category"),
		ExerciseId:  r.URL.Query().Get("id"),
	})
	if err != nil {
		log.Errorf("get exercise types: %s", err)
		http.Error(w, "get exercise types failed", http.StatusInternalServerError)
		return
	}

	exTypesJson, err := json.Marshal(exerciseTypes)
	if err != nil {
		log.Errorf("marshal exercise types: %s", err)
		http.Error(w, "get exercise types failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exTypesJson, http.StatusOK)
}

// HandleGetOne returns the exercise type together with the tracking type derived from its category.
func (handler *TypesHandler) HandleGetOne(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercise_types.get_one")
	defer span.End()

	id := mux.Vars(r)["id"]
	exerciseType, err := handler.repo.GetExerciseType(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseTypeNotFound) {
			http.Error(w, "exercise type not found", http.StatusNotFound)
			return
		}
		log.Errorf("get exercise type %s: %s", id, err)
		http.Error(w, "get exercise type failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, struct {
		ExerciseType
		TrackingType workout.TrackingType `json:"trackingType"`
	}{
		ExerciseType: exerciseType,
		TrackingType: workout.DeriveTrackingType(exerciseType.Metadata()),
	}, http.StatusOK)
}

func (handler *TypesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercise_types.update")
	defer span.End()

	exerciseType, ok := handler.decodeExerciseType(w, r, "update")
	if !ok {
		return
	}

	if err := handler.repo.UpdateExerciseType(ctx, exerciseType); err != nil {
		if errors.Is(err, ErrExerciseTypeNotFound) {
			http.Error(w, "exercise type not found", http.StatusNotFound)
			return
		}
		log.Errorf("update exercise type: %s", err)
		http.Error(w, "update exercise type failed", http.StatusInternalServerError)
		return
	}
	handler.invalidate(exerciseType.ID)

	log.Debugf("exercise type updated: %+v", exerciseType)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *TypesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercise_types.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteExerciseType(ctx, id); err != nil {
		if errors.Is(err, ErrExerciseTypeNotFound) {
			http.Error(w, "exercise type not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete exercise type: %s", err)
		http.Error(w, "delete exercise type failed", http.StatusInternalServerError)
		return
	}
	handler.invalidate(id)

	log.Debugf("exercise type deleted: %s", id)
	w.WriteHeader(http.StatusNoContent)
}
