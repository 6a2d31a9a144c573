package templates_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymtracker/internal/gymstats/templates"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

func setupRouter(t *testing.T) (*MocktemplatesRepo, *mux.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := NewMocktemplatesRepo(ctrl)
	source := staticSource{
		"push": {ID: "push", Name: "Push", Exercises: []workout.ExerciseSlot{{ExerciseID: "bench_press"}}},
	}

	r := mux.NewRouter()
	templates.NewHandler(repo, source).SetupRoutes(r)
	return repo, r
}

func TestHandler_HandleGet(t *testing.T) {
	_, r := setupRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/gymstats/templates/push", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var template workout.Template
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &template))
	assert.Equal(t, "Push", template.Name)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/gymstats/templates/pull", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_HandleSave(t *testing.T) {
	repo, r := setupRouter(t)

	template := workout.Template{
		Name:      "Legs",
		Exercises: []workout.ExerciseSlot{{ExerciseID: "squat", DefaultReps: "5"}},
	}
	body, err := json.Marshal(template)
	require.NoError(t, err)

	repo.EXPECT().
		SaveTemplate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, saved workout.Template) error {
			assert.Equal(t, "legs", saved.ID)
			assert.Equal(t, "Legs", saved.Name)
			return nil
		})

	req := httptest.NewRequest("PUT", "/gymstats/templates/legs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// no exercises
	body, err = json.Marshal(workout.Template{Name: "Empty"})
	require.NoError(t, err)
	req = httptest.NewRequest("PUT", "/gymstats/templates/empty", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var verr workout.ValidationError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verr))
	assert.Equal(t, "exercises", verr.Field)
}

func TestHandler_HandleListPlans(t *testing.T) {
	repo, r := setupRouter(t)

	var plans []templates.Plan
	for i := 0; i < 3; i++ {
		plans = append(plans, templates.Plan{
			ID:          i + 1,
			Name:        gofakeit.Sentence(3),
			Description: gofakeit.Sentence(10),
			Goal:        "strength",
			AuthorID:    7,
			AuthorName:  gofakeit.Name(),
			DayCount:    gofakeit.Number(1, 6),
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		})
	}

	repo.EXPECT().
		ListPlans(gomock.Any(), templates.ListPlansParams{Search: "push", Goal: "strength"}).
		Return(plans, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/training-plans?search=+push+&goal=strength", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got []templates.Plan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, plans, got)

	repo.EXPECT().
		ListPlans(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/training-plans", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_HandleAddPlan(t *testing.T) {
	repo, r := setupRouter(t)

	plan := templates.NewPlan{
		Name:     "5/3/1",
		Goal:     "strength",
		AuthorID: 3,
		Days: []templates.PlanDay{
			{DayNumber: 1, WorkoutID: "push"},
			{DayNumber: 2, WorkoutID: "legs"},
		},
	}
	body, err := json.Marshal(plan)
	require.NoError(t, err)

	repo.EXPECT().AddPlan(gomock.Any(), plan).Return(42, nil)

	req := httptest.NewRequest("POST", "/training-plans", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp templates.AddPlanResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.ID)

	// author is required
	body, err = json.Marshal(templates.NewPlan{Name: "No author"})
	require.NoError(t, err)
	req = httptest.NewRequest("POST", "/training-plans", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
