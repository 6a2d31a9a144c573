package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/2beens/gymtracker/internal/gymstats/progression"
	"github.com/2beens/gymtracker/internal/gymstats/session"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// idleTicker never fires, ticks are driven by the tests through TickRest and TickClock.
type idleTicker struct {
	c chan time.Time
}

func newIdleTicker(time.Duration) session.Ticker {
	return &idleTicker{c: make(chan time.Time)}
}

func (t *idleTicker) C() <-chan time.Time {
	return t.c
}

func (t *idleTicker) Stop() {}

type memAutosaves struct {
	mu     sync.Mutex
	snaps  map[string]workout.Snapshot
	putErr error
	puts   int
}

func newMemAutosaves() *memAutosaves {
	return &memAutosaves{snaps: map[string]workout.Snapshot{}}
}

func (m *memAutosaves) Get(_ context.Context, workoutID string) (*workout.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[workoutID]
	if !ok {
		return nil, workout.ErrSnapshotNotFound
	}
	snap.RecordedSets = snap.RecordedSets.Clone()
	return &snap, nil
}

func (m *memAutosaves) Put(_ context.Context, workoutID string, snapshot workout.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	// stores persist snapshots as JSON
	if _, err := json.Marshal(snapshot); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	m.snaps[workoutID] = snapshot
	return nil
}

func (m *memAutosaves) Delete(_ context.Context, workoutID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, workoutID)
	return nil
}

func (m *memAutosaves) snapshot(workoutID string) (workout.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[workoutID]
	return snap, ok
}

func (m *memAutosaves) setPutErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

type memTemplates map[string]workout.Template

func (m memTemplates) GetTemplateByID(_ context.Context, workoutID string) (workout.Template, error) {
	t, ok := m[workoutID]
	if !ok {
		return workout.Template{}, workout.ErrTemplateNotFound
	}
	return t, nil
}

type memCatalog map[string]workout.ExerciseMetadata

func (m memCatalog) GetExerciseMetadata(_ context.Context, exerciseID string) (workout.ExerciseMetadata, error) {
	meta, ok := m[exerciseID]
	if !ok {
		return workout.ExerciseMetadata{}, errors.New("exercise not found")
	}
	return meta, nil
}

type memHistory map[string][]workout.PastSession

func (m memHistory) GetPastSessions(_ context.Context, exerciseID string) ([]workout.PastSession, error) {
	return m[exerciseID], nil
}

type staticRules progression.Rules

func (r staticRules) GetProgressionRules(context.Context) (progression.Rules, error) {
	return progression.Rules(r), nil
}

type memSink struct {
	mu        sync.Mutex
	err       error
	summaries []workout.Summary
}

func (s *memSink) Submit(_ context.Context, summary workout.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.summaries = append(s.summaries, summary)
	return nil
}

// gatedTemplates blocks GetTemplateByID for the gated workout until release is closed.
type gatedTemplates struct {
	memTemplates
	gated   string
	entered chan struct{}
	release chan struct{}
}

func newGatedTemplates(gated string) *gatedTemplates {
	tmpl := pushPullTemplate()
	gatedTmpl := pushPullTemplate()
	gatedTmpl.ID = gated
	return &gatedTemplates{
		memTemplates: memTemplates{tmpl.ID: tmpl, gated: gatedTmpl},
		gated:        gated,
		entered:      make(chan struct{}, 1),
		release:      make(chan struct{}),
	}
}

func (g *gatedTemplates) GetTemplateByID(ctx context.Context, workoutID string) (workout.Template, error) {
	if workoutID == g.gated {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.memTemplates.GetTemplateByID(ctx, workoutID)
}

// gatedSink blocks Submit until release is closed.
type gatedSink struct {
	memSink
	entered chan struct{}
	release chan struct{}
}

func newGatedSink() *gatedSink {
	return &gatedSink{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (g *gatedSink) Submit(ctx context.Context, summary workout.Summary) error {
	g.entered <- struct{}{}
	<-g.release
	return g.memSink.Submit(ctx, summary)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []session.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification session.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *recordingNotifier) ofType(t session.NotificationType) []session.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []session.Notification
	for _, sent := range n.sent {
		if sent.Type == t {
			out = append(out, sent)
		}
	}
	return out
}

func intPtr(i int) *int {
	return &i
}

func pushPullTemplate() workout.Template {
	return workout.Template{
		ID:   "push-pull",
		Name: "Push Pull",
		Exercises: []workout.ExerciseSlot{
			{ExerciseID: "bench_press", DefaultSets: intPtr(3), DefaultReps: "8-10", DefaultRestSeconds: intPtr(90)},
			{ExerciseID: "pull_up", DefaultSets: intPtr(3), DefaultReps: "6-8"},
		},
	}
}

type testEnv struct {
	clock     *fakeClock
	autosaves *memAutosaves
	sink      *memSink
	notifier  *recordingNotifier
	metrics   *metrics.Manager
	engine    *session.Engine
}

func newTestEnv(t *testing.T, opts ...func(*session.EngineParams)) *testEnv {
	t.Helper()

	env := &testEnv{
		clock:     newFakeClock(),
		autosaves: newMemAutosaves(),
		sink:      &memSink{},
		notifier:  &recordingNotifier{},
		metrics:   metrics.NewTestManager(),
	}

	ids := 0
	params := session.EngineParams{
		Templates: memTemplates{"push-pull": pushPullTemplate()},
		Catalog: memCatalog{
			"bench_press": {ID: "bench_press", Name: "Bench Press", Category: "Strength"},
			"pull_up":     {ID: "pull_up", Name: "Pull Up", Category: "Bodyweight"},
		},
		History: memHistory{
			"bench_press": {
				{
					Date: time.Date(2025, 3, 7, 18, 0, 0, 0, time.UTC),
					SetsPerformed: []workout.PerformedSet{
						{Weight: workout.Numeric(60), Reps: workout.Numeric(10)},
					},
				},
			},
		},
		Rules: staticRules(progression.Rules{
			Enabled:               true,
			SelectedModel:         progression.ModelLinearWeight,
			LinearWeightIncrement: 2.5,
		}),
		Autosaves:          env.autosaves,
		Sink:               env.sink,
		Notifier:           env.notifier,
		Metrics:            env.metrics,
		DefaultRestSeconds: 60,
		NowFunc:            env.clock.Now,
		NewTicker:          newIdleTicker,
		IDFunc: func() string {
			ids++
			return fmt.Sprintf("summary-%d", ids)
		},
	}
	for _, opt := range opts {
		opt(&params)
	}
	env.engine = session.NewEngine(params)

	t.Cleanup(func() {
		require.NoError(t, env.engine.Shutdown(context.Background()))
	})

	return env
}

func (env *testEnv) start(t *testing.T) *session.Session {
	t.Helper()
	s, offer, err := env.engine.Start(context.Background(), "push-pull", nil)
	require.NoError(t, err)
	require.Nil(t, offer)
	require.NotNil(t, s)
	return s
}
