package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/2beens/gymtracker/internal/gymstats/progression"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
)

// ResumeOffer is returned by Start when an autosave snapshot exists for the workout.
// The caller must accept or reject it before a session exists.
type ResumeOffer struct {
	WorkoutID      string    `json:"workoutId"`
	TemplateName   string    `json:"templateName"`
	StartTime      time.Time `json:"startTime"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	SetsRecorded   int       `json:"setsRecorded"`
	SavedAt        time.Time `json:"savedAt"`
}

// pendingResume remembers an unanswered resume offer. The snapshot itself
// stays in the autosave store and is read again on accept.
type pendingResume struct {
	adHoc     *workout.Template
	offeredAt time.Time
}

type EngineParams struct {
	Templates TemplateSource
	Catalog   ExerciseCatalog
	History   HistoryProvider
	Rules     RulesProvider
	Autosaves AutosaveStore
	Sink      SummarySink
	Notifier  Notifier
	// Events is optional.
	Events  EventRecorder
	Metrics *metrics.Manager

	DefaultRestSeconds int
	TickInterval       time.Duration
	NowFunc            func() time.Time
	NewTicker          TickerFactory
	IDFunc             func() string
}

// Engine owns the live workout sessions, at most one per workout ID.
type Engine struct {
	templates TemplateSource
	catalog   ExerciseCatalog
	history   HistoryProvider
	rules     RulesProvider
	autosaves AutosaveStore
	sink      SummarySink
	notifier  Notifier
	events    EventRecorder
	metrics   *metrics.Manager

	defaultRestSeconds int
	tickInterval       time.Duration
	now                func() time.Time
	newTicker          TickerFactory
	newID              func() string

	// mu guards the maps only, it is never held across I/O
	mu       sync.Mutex
	live     map[string]*Session
	pending  map[string]pendingResume
	starting map[string]chan struct{}
}

func NewEngine(params EngineParams) *Engine {
	e := &Engine{
		templates:          params.Templates,
		catalog:            params.Catalog,
		history:            params.History,
		rules:              params.Rules,
		autosaves:          params.Autosaves,
		sink:               params.Sink,
		notifier:           params.Notifier,
		events:             params.Events,
		metrics:            params.Metrics,
		defaultRestSeconds: params.DefaultRestSeconds,
		tickInterval:       params.TickInterval,
		now:                params.NowFunc,
		newTicker:          params.NewTicker,
		newID:              params.IDFunc,
		live:               make(map[string]*Session),
		pending:            make(map[string]pendingResume),
		starting:           make(map[string]chan struct{}),
	}

	if e.notifier == nil {
		e.notifier = noopNotifier{}
	}
	if e.metrics == nil {
		e.metrics = metrics.NewTestManager()
	}
	if e.defaultRestSeconds <= 0 {
		e.defaultRestSeconds = workout.DefaultRestSeconds
	}
	if e.tickInterval <= 0 {
		e.tickInterval = DefaultTickInterval
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newTicker == nil {
		e.newTicker = NewTimeTicker
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}

	return e
}

// Start returns the live session for the workout, a resume offer when an autosave
// snapshot exists, or a fresh session. adHoc, when set, is used instead of the
// template source (repeat a past workout).
func (e *Engine) Start(ctx context.Context, workoutID string, adHoc *workout.Template) (*Session, *ResumeOffer, error) {
	workoutID = strings.TrimSpace(workoutID)
	if workoutID == "" {
		return nil, nil, workout.NewValidationError("workoutId", "workout id is required")
	}

	release, err := e.guardWorkout(ctx, workoutID)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	if s := e.liveSession(workoutID); s != nil {
		return s, nil, nil
	}

	snapshot, err := e.loadSnapshot(ctx, workoutID)
	if err != nil {
		return nil, nil, err
	}
	if snapshot != nil {
		e.mu.Lock()
		e.pending[workoutID] = pendingResume{adHoc: adHoc, offeredAt: e.now()}
		e.mu.Unlock()
		return nil, &ResumeOffer{
			WorkoutID:      workoutID,
			TemplateName:   snapshot.TemplateName,
			StartTime:      snapshot.StartTime,
			ElapsedSeconds: snapshot.ElapsedSeconds,
			SetsRecorded:   snapshot.RecordedSets.Count(),
			SavedAt:        snapshot.SavedAt,
		}, nil
	}

	s, err := e.startFresh(ctx, workoutID, adHoc)
	if err != nil {
		return nil, nil, err
	}
	return s, nil, nil
}

// AcceptResume rebuilds the session from the autosave snapshot, keeping its sets,
// position, notes and elapsed time.
func (e *Engine) AcceptResume(ctx context.Context, workoutID string) (*Session, error) {
	release, err := e.guardWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	defer release()

	if s := e.liveSession(workoutID); s != nil {
		return s, nil
	}

	snapshot, err := e.loadSnapshot(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		e.dropPending(workoutID)
		return nil, ErrNoPendingResume
	}
	if len(snapshot.Exercises) == 0 {
		return nil, fmt.Errorf("resume [%s]: %w", workoutID, workout.ErrTemplateNotFound)
	}
	snapshot.WorkoutID = workoutID

	s := restoreSession(e, *snapshot, e.now())
	e.dropPending(workoutID)
	e.register(ctx, s, true)
	log.WithField("workout", workoutID).Debugf("session resumed at %ds elapsed", snapshot.ElapsedSeconds)
	return s, nil
}

// RejectResume deletes the autosave snapshot and starts a fresh session.
func (e *Engine) RejectResume(ctx context.Context, workoutID string, adHoc *workout.Template) (*Session, error) {
	release, err := e.guardWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	defer release()

	if s := e.liveSession(workoutID); s != nil {
		return s, nil
	}

	if adHoc == nil {
		e.mu.Lock()
		if p, ok := e.pending[workoutID]; ok {
			adHoc = p.adHoc
		}
		e.mu.Unlock()
	}

	if err := e.discard(ctx, workoutID); err != nil {
		return nil, err
	}
	return e.startFresh(ctx, workoutID, adHoc)
}

// DiscardAutosave deletes the stored snapshot of a workout that is not live.
func (e *Engine) DiscardAutosave(ctx context.Context, workoutID string) error {
	release, err := e.guardWorkout(ctx, workoutID)
	if err != nil {
		return err
	}
	defer release()
	return e.discard(ctx, workoutID)
}

func (e *Engine) discard(ctx context.Context, workoutID string) error {
	e.dropPending(workoutID)
	if err := e.autosaves.Delete(ctx, workoutID); err != nil {
		return fmt.Errorf("discard autosave [%s]: %w", workoutID, err)
	}
	if e.events != nil {
		if err := e.events.AutosaveDiscarded(ctx, workoutID, e.now()); err != nil {
			log.Errorf("record autosave discarded event: %s", err)
		}
	}
	return nil
}

// Get returns the live session of a workout.
func (e *Engine) Get(workoutID string) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.live[workoutID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// LiveSessions returns the IDs of the workouts loaded in memory.
func (e *Engine) LiveSessions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, len(e.live))
	for id := range e.live {
		ids = append(ids, id)
	}
	return ids
}

// States returns the state of every live session, ordered by workout ID.
func (e *Engine) States() []State {
	e.mu.Lock()
	sessions := make([]*Session, 0, len(e.live))
	for _, s := range e.live {
		sessions = append(sessions, s)
	}
	e.mu.Unlock()

	states := make([]State, 0, len(sessions))
	for _, s := range sessions {
		states = append(states, s.State())
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].WorkoutID < states[j].WorkoutID
	})
	return states
}

// Finish finishes the live session of a workout and removes it from the engine.
func (e *Engine) Finish(ctx context.Context, workoutID string) (workout.Summary, error) {
	s, err := e.Get(workoutID)
	if err != nil {
		return workout.Summary{}, err
	}

	summary, err := s.Finish(ctx)
	if err != nil {
		return workout.Summary{}, err
	}

	e.mu.Lock()
	if e.live[workoutID] == s {
		delete(e.live, workoutID)
		e.metrics.GaugeLiveSessions.Set(float64(len(e.live)))
	}
	e.mu.Unlock()

	if e.events != nil {
		if err := e.events.TrainingFinished(ctx, summary); err != nil {
			log.Errorf("record training finished event: %s", err)
		}
	}
	return summary, nil
}

// Unload evicts a live session from memory after writing its final snapshot.
func (e *Engine) Unload(ctx context.Context, workoutID string) error {
	e.mu.Lock()
	s, ok := e.live[workoutID]
	if ok {
		delete(e.live, workoutID)
		e.metrics.GaugeLiveSessions.Set(float64(len(e.live)))
	}
	e.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	return s.unload(ctx)
}

// UnloadIdle evicts sessions without activity for longer than idleFor and
// forgets resume offers left unanswered for as long. Forgotten offers can
// still be accepted while their snapshot exists.
func (e *Engine) UnloadIdle(ctx context.Context, idleFor time.Duration) int {
	cutoff := e.now().Add(-idleFor)

	e.mu.Lock()
	for id, p := range e.pending {
		if p.offeredAt.Before(cutoff) {
			delete(e.pending, id)
		}
	}
	e.mu.Unlock()

	unloaded := 0
	for _, id := range e.LiveSessions() {
		s, err := e.Get(id)
		if err != nil || s.idleSince().After(cutoff) {
			continue
		}
		if err := e.Unload(ctx, id); err != nil {
			log.Errorf("unload idle session [%s]: %s", id, err)
			continue
		}
		unloaded++
	}
	return unloaded
}

// Shutdown unloads all live sessions, so they can be resumed after a restart.
func (e *Engine) Shutdown(ctx context.Context) error {
	var err error
	for _, id := range e.LiveSessions() {
		if unloadErr := e.Unload(ctx, id); unloadErr != nil && !errors.Is(unloadErr, ErrSessionNotFound) {
			err = multierr.Append(err, unloadErr)
		}
	}
	return err
}

// SuggestFor derives the progression suggestion for an exercise, outside of any session.
func (e *Engine) SuggestFor(ctx context.Context, exerciseID string) (progression.Suggestion, error) {
	meta, err := e.catalog.GetExerciseMetadata(ctx, exerciseID)
	if err != nil {
		log.Warnf("exercise metadata for [%s]: %s", exerciseID, err)
		meta = workout.ExerciseMetadata{ID: exerciseID}
	}
	if meta.ID == "" {
		meta.ID = exerciseID
	}

	rules, err := e.rules.GetProgressionRules(ctx)
	if err != nil {
		return progression.Suggestion{}, fmt.Errorf("get progression rules: %w", err)
	}

	var history []workout.PastSession
	// history is not needed when suggestions are disabled
	if rules.Enabled {
		history, err = e.history.GetPastSessions(ctx, exerciseID)
		if err != nil {
			return progression.Suggestion{}, fmt.Errorf("get past sessions: %w", err)
		}
	}

	return progression.DeriveSuggestion(meta, workout.DeriveTrackingType(meta), history, rules), nil
}

func (e *Engine) startFresh(ctx context.Context, workoutID string, adHoc *workout.Template) (*Session, error) {
	var template workout.Template
	if adHoc != nil {
		template = *adHoc
	} else {
		var err error
		template, err = e.templates.GetTemplateByID(ctx, workoutID)
		if errors.Is(err, workout.ErrTemplateNotFound) {
			return nil, fmt.Errorf("workout [%s]: %w", workoutID, workout.ErrTemplateNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("get template [%s]: %w", workoutID, err)
		}
	}

	if len(template.Exercises) == 0 {
		return nil, workout.NewValidationError("exercises", "workout template has no exercises")
	}

	s := newSession(e, workoutID, template, e.now())
	e.register(ctx, s, false)
	return s, nil
}

// register must be called with the workout guard held.
func (e *Engine) register(ctx context.Context, s *Session, resumed bool) {
	s.mu.Lock()
	s.startClock()
	s.mu.Unlock()

	e.mu.Lock()
	e.live[s.workoutID] = s
	e.metrics.GaugeLiveSessions.Set(float64(len(e.live)))
	e.mu.Unlock()

	mode := "fresh"
	if resumed {
		mode = "resumed"
	}
	e.metrics.CounterSessionsStarted.WithLabelValues(mode).Inc()

	if e.events != nil {
		if err := e.events.TrainingStarted(ctx, s.workoutID, s.template.Name, e.now(), resumed); err != nil {
			log.Errorf("record training started event: %s", err)
		}
	}
}

// guardWorkout serializes Start, resume and discard of one workout without
// blocking other workouts. The returned func releases the guard.
func (e *Engine) guardWorkout(ctx context.Context, workoutID string) (func(), error) {
	for {
		e.mu.Lock()
		busy, ok := e.starting[workoutID]
		if !ok {
			done := make(chan struct{})
			e.starting[workoutID] = done
			e.mu.Unlock()
			return func() {
				e.mu.Lock()
				delete(e.starting, workoutID)
				e.mu.Unlock()
				close(done)
			}, nil
		}
		e.mu.Unlock()

		select {
		case <-busy:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// liveSession returns the live session of a workout, or nil. A session that
// finished or unloaded but is still in the map counts as absent.
func (e *Engine) liveSession(workoutID string) *Session {
	e.mu.Lock()
	s, ok := e.live[workoutID]
	e.mu.Unlock()
	if !ok || s.isFinished() {
		return nil
	}
	return s
}

func (e *Engine) dropPending(workoutID string) {
	e.mu.Lock()
	delete(e.pending, workoutID)
	e.mu.Unlock()
}

func (e *Engine) loadSnapshot(ctx context.Context, workoutID string) (*workout.Snapshot, error) {
	snapshot, err := e.autosaves.Get(ctx, workoutID)
	switch {
	case errors.Is(err, workout.ErrSnapshotNotFound):
		return nil, nil
	case errors.Is(err, workout.ErrSnapshotCorrupted):
		log.WithField("workout", workoutID).Warnf("ignoring corrupted autosave snapshot: %s", err)
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("get autosave [%s]: %w", workoutID, err)
	}
	return snapshot, nil
}

func (e *Engine) dispatch(ctx context.Context, notifications []Notification) {
	for _, n := range notifications {
		e.metrics.CounterNotifications.WithLabelValues(string(n.Type)).Inc()
		e.notifier.Notify(ctx, n)
	}
}
