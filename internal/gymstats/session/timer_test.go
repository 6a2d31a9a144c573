package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymtracker/internal/gymstats/session"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

func TestTimerTasks_RealTicker(t *testing.T) {
	notifier := &recordingNotifier{}
	autosaves := newMemAutosaves()
	engine := session.NewEngine(session.EngineParams{
		Templates: memTemplates{"quick": {
			ID:   "quick",
			Name: "Quick",
			Exercises: []workout.ExerciseSlot{
				{ExerciseID: "plank", DefaultRestSeconds: intPtr(3)},
			},
		}},
		Autosaves:    autosaves,
		Sink:         &memSink{},
		Notifier:     notifier,
		TickInterval: 5 * time.Millisecond,
	})

	ctx := context.Background()
	s, _, err := engine.Start(ctx, "quick", nil)
	require.NoError(t, err)

	require.NoError(t, s.RecordSet(ctx, workout.SetValues{Reps: "60s"}))
	require.Eventually(t, func() bool {
		return len(notifier.ofType(session.NotificationRestOver)) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, s.State().Rest.Resting)

	// a rest that is skipped never reports rest over
	require.NoError(t, s.RecordSet(ctx, workout.SetValues{Reps: "45s"}))
	require.NoError(t, s.SkipRest(ctx))
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, notifier.ofType(session.NotificationRestOver), 1)

	_, err = engine.Finish(ctx, "quick")
	require.NoError(t, err)
	require.NoError(t, engine.Shutdown(ctx))
}

func TestTimerTasks_StoppedOnUnload(t *testing.T) {
	engine := session.NewEngine(session.EngineParams{
		Templates:    memTemplates{"push-pull": pushPullTemplate()},
		Autosaves:    newMemAutosaves(),
		Sink:         &memSink{},
		TickInterval: time.Millisecond,
	})

	ctx := context.Background()
	s, _, err := engine.Start(ctx, "push-pull", nil)
	require.NoError(t, err)
	require.NoError(t, s.RecordSet(ctx, workout.SetValues{Weight: "60", Reps: "10"}))
	require.True(t, s.State().Rest.Resting)

	require.NoError(t, engine.Shutdown(ctx))
	assert.Empty(t, engine.LiveSessions())
}
