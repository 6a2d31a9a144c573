package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymtracker/internal/gymstats/progression"
	"github.com/2beens/gymtracker/internal/gymstats/session"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any, expectedStatus int, out any) {
	var reader io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "GymTracker/1.0 test")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), expectedStatus, resp.StatusCode, "%s %s: %s", method, path, respBytes)

	if out != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, out))
	}
}

func pushPullTemplate(workoutID string) *workout.Template {
	sets := 2
	rest := 90
	return &workout.Template{
		ID:   workoutID,
		Name: "Push Pull",
		Exercises: []workout.ExerciseSlot{
			{ExerciseID: "bench_press", DefaultSets: &sets, DefaultReps: "8-10", DefaultRestSeconds: &rest},
			{ExerciseID: "pull_up", DefaultSets: &sets},
		},
	}
}

func (s *IntegrationTestSuite) TestSessionFlow() {
	ctx := context.Background()
	workoutID := "push-pull-flow"
	base := fmt.Sprintf("/gymstats/workouts/%s", workoutID)

	var started session.StartResponse
	s.doRequest(ctx, http.MethodPost, base+"/session", session.StartRequest{Template: pushPullTemplate(workoutID)}, http.StatusOK, &started)
	require.NotNil(s.T(), started.Session)
	s.Nil(started.ResumeOffer)
	s.Equal("bench_press", started.Session.CurrentExercise.ExerciseID)

	var state session.State
	s.doRequest(ctx, http.MethodPost, base+"/session/sets", workout.SetValues{Weight: "60", Reps: "10"}, http.StatusCreated, &state)
	s.Len(state.RecordedSets["bench_press"], 1)
	s.True(state.Rest.Resting)
	s.Equal(90, state.Rest.TotalSeconds)

	s.doRequest(ctx, http.MethodPost, base+"/session/sets", workout.SetValues{Weight: "60", Reps: "9"}, http.StatusCreated, &state)
	s.Len(state.RecordedSets["bench_press"], 2)

	// invalid values are rejected with the field name
	var verr workout.ValidationError
	s.doRequest(ctx, http.MethodPost, base+"/session/sets", workout.SetValues{Weight: "60"}, http.StatusBadRequest, &verr)
	s.Equal("reps", verr.Field)

	var nav session.NavigationResponse
	s.doRequest(ctx, http.MethodPost, base+"/session/next", nil, http.StatusOK, &nav)
	s.True(nav.Moved)
	s.Equal("pull_up", nav.Session.CurrentExercise.ExerciseID)
	s.True(nav.Session.IsLastExercise)

	s.doRequest(ctx, http.MethodPost, base+"/session/sets", workout.SetValues{Weight: "BW", Reps: "8"}, http.StatusCreated, &state)

	var current session.State
	s.Require().NoError(json.Unmarshal(s.mustGet(ctx, base+"/session"), &current))
	s.Equal(3, current.RecordedSets.Count())
	s.Empty(current.AutosaveWarning)

	var summary workout.Summary
	s.doRequest(ctx, http.MethodPost, base+"/session/finish", nil, http.StatusOK, &summary)
	s.Equal(workoutID, summary.WorkoutID)
	s.Equal(3, summary.RecordedSets.Count())

	var stored workout.Summary
	s.doRequest(ctx, http.MethodGet, "/gymstats/history/sessions/"+summary.ID, nil, http.StatusOK, &stored)
	s.Equal(summary.TemplateName, stored.TemplateName)
	s.Len(stored.RecordedSets["bench_press"], 2)

	// the session is gone after finishing
	s.doRequest(ctx, http.MethodGet, base+"/session", nil, http.StatusNotFound, nil)

	var suggestion progression.Suggestion
	s.doRequest(ctx, http.MethodGet, "/gymstats/exercises/bench_press/suggestion", nil, http.StatusOK, &suggestion)
	s.Equal("bench_press", suggestion.ExerciseID)
	s.NotEqual(progression.KindDisabled, suggestion.Kind)
	s.NotEqual(progression.KindFirstTime, suggestion.Kind)
	s.NotEmpty(suggestion.Message)
}

func (s *IntegrationTestSuite) mustGet(ctx context.Context, path string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverEndpoint+path, nil)
	require.NoError(s.T(), err)
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return body
}
