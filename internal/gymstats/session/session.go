package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/progression"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

const autosaveTimeout = 5 * time.Second

type RestState struct {
	Resting          bool `json:"resting"`
	RemainingSeconds int  `json:"remainingSeconds"`
	TotalSeconds     int  `json:"totalSeconds"`
}

func NotResting() RestState {
	return RestState{}
}

func Resting(remaining, total int) RestState {
	return RestState{Resting: true, RemainingSeconds: remaining, TotalSeconds: total}
}

// EditingSet points at the set under edit, Snapshot holds its values before the edit.
type EditingSet struct {
	ExerciseID string              `json:"exerciseId"`
	SetIndex   int                 `json:"setIndex"`
	Snapshot   workout.RecordedSet `json:"snapshot"`
}

// Session is one live workout. All operations and timer ticks are serialized by mu.
type Session struct {
	mu sync.Mutex

	engine    *Engine
	workoutID string
	template  workout.Template

	recordedSets  workout.RecordedSets
	currentIndex  int
	exerciseNotes map[string]string

	startTime      time.Time
	elapsedSeconds int
	pausedAt       *time.Time
	pausedTotal    time.Duration

	rest           RestState
	editing        *EditingSet
	form           workout.SetValues
	formBeforeEdit workout.SetValues

	autosaveWarning string
	notifications   []Notification
	outbox          []Notification

	finished     bool
	lastActivity time.Time

	restTask  *tickTask
	clockTask *tickTask
}

func newSession(e *Engine, workoutID string, template workout.Template, now time.Time) *Session {
	return &Session{
		engine:        e,
		workoutID:     workoutID,
		template:      template,
		recordedSets:  workout.RecordedSets{},
		exerciseNotes: map[string]string{},
		startTime:     now,
		lastActivity:  now,
	}
}

func restoreSession(e *Engine, snapshot workout.Snapshot, now time.Time) *Session {
	s := newSession(e, snapshot.WorkoutID, snapshot.Template(), now)
	if snapshot.RecordedSets != nil {
		s.recordedSets = snapshot.RecordedSets.Clone()
	}
	for exID := range s.recordedSets {
		s.recordedSets.Renumber(exID)
	}
	for exID, note := range snapshot.ExerciseNotes {
		s.exerciseNotes[exID] = note
	}

	s.currentIndex = snapshot.CurrentExerciseIndex
	if s.currentIndex < 0 {
		s.currentIndex = 0
	}
	if last := len(s.template.Exercises) - 1; s.currentIndex > last {
		s.currentIndex = last
	}

	// re-base the clock so that now - start equals the saved elapsed time
	s.elapsedSeconds = snapshot.ElapsedSeconds
	s.startTime = now.Add(-time.Duration(snapshot.ElapsedSeconds) * time.Second)
	return s
}

func (s *Session) WorkoutID() string {
	return s.workoutID
}

// do runs op under the session lock and dispatches the notifications it emitted
// once the lock is released.
func (s *Session) do(ctx context.Context, op func() error) error {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return ErrSessionFinished
	}
	err := op()
	s.lastActivity = s.engine.now()
	out := s.drainOutbox()
	s.mu.Unlock()

	s.engine.dispatch(ctx, out)
	return err
}

func (s *Session) currentSlot() workout.ExerciseSlot {
	return s.template.Exercises[s.currentIndex]
}

// RecordSet appends a set to the current exercise and starts the rest timer.
func (s *Session) RecordSet(ctx context.Context, values workout.SetValues) error {
	return s.do(ctx, func() error {
		if s.editing != nil {
			return workout.NewValidationError("editingSet", "finish or cancel the set edit first")
		}
		if err := values.Validate(); err != nil {
			return err
		}

		slot := s.currentSlot()
		sets := s.recordedSets[slot.ExerciseID]
		set := values.ToRecordedSet(len(sets) + 1)
		s.recordedSets[slot.ExerciseID] = append(sets, set)
		s.recordedSets.Renumber(slot.ExerciseID)

		// weight is carried forward for the next set
		s.form = workout.SetValues{Weight: values.Weight}

		s.startRest(slot.RestSeconds(s.engine.defaultRestSeconds))
		s.engine.metrics.CounterSetsRecorded.Inc()
		s.emit(NotificationSetSaved, slot.ExerciseID, fmt.Sprintf(
			"Set %d saved: %s", set.SetNumber, describeRecordedSet(set),
		))

		s.autosave(ctx)
		return nil
	})
}

// BeginEditSet puts one recorded set under edit. Rest is cancelled and the clock is paused.
func (s *Session) BeginEditSet(ctx context.Context, exerciseID string, setIndex int) error {
	return s.do(ctx, func() error {
		sets := s.recordedSets[exerciseID]
		if setIndex < 0 || setIndex >= len(sets) {
			return workout.NewValidationError("setIndex", fmt.Sprintf("no set %d for exercise %s", setIndex, exerciseID))
		}

		if s.editing == nil {
			s.formBeforeEdit = s.form
		}
		s.editing = &EditingSet{
			ExerciseID: exerciseID,
			SetIndex:   setIndex,
			Snapshot:   sets[setIndex],
		}
		s.form = sets[setIndex].Values()

		s.stopRest()
		s.pauseClock()
		return nil
	})
}

// CommitEditSet overwrites the set under edit in place. No rest period is started.
func (s *Session) CommitEditSet(ctx context.Context, values workout.SetValues) error {
	return s.do(ctx, func() error {
		if s.editing == nil {
			return workout.NewValidationError("editingSet", "no set is being edited")
		}
		if err := values.Validate(); err != nil {
			return err
		}

		sets := s.recordedSets[s.editing.ExerciseID]
		idx := s.editing.SetIndex
		sets[idx] = values.ToRecordedSet(sets[idx].SetNumber)
		s.recordedSets.Renumber(s.editing.ExerciseID)

		s.endEdit()
		s.autosave(ctx)
		return nil
	})
}

// CancelEditSet drops the edit without touching the set.
func (s *Session) CancelEditSet(ctx context.Context) error {
	return s.do(ctx, func() error {
		if s.editing == nil {
			return nil
		}
		s.endEdit()
		return nil
	})
}

// DeleteSet removes a set and renumbers the remaining sets of that exercise.
func (s *Session) DeleteSet(ctx context.Context, exerciseID string, setIndex int) error {
	return s.do(ctx, func() error {
		sets := s.recordedSets[exerciseID]
		if setIndex < 0 || setIndex >= len(sets) {
			return workout.NewValidationError("setIndex", fmt.Sprintf("no set %d for exercise %s", setIndex, exerciseID))
		}

		sets = append(sets[:setIndex:setIndex], sets[setIndex+1:]...)
		if len(sets) == 0 {
			delete(s.recordedSets, exerciseID)
		} else {
			s.recordedSets[exerciseID] = sets
			s.recordedSets.Renumber(exerciseID)
		}

		if s.editing != nil && s.editing.ExerciseID == exerciseID {
			switch {
			case s.editing.SetIndex == setIndex:
				s.endEdit()
			case s.editing.SetIndex > setIndex:
				s.editing.SetIndex--
			}
		}

		s.autosave(ctx)
		return nil
	})
}

// NextExercise moves to the next exercise. At the last exercise nothing changes
// and a last_exercise notification is emitted. Returns whether the index moved.
func (s *Session) NextExercise(ctx context.Context) (bool, error) {
	moved := false
	err := s.do(ctx, func() error {
		if s.currentIndex >= len(s.template.Exercises)-1 {
			s.emit(NotificationLastExercise, s.currentSlot().ExerciseID,
				"This is the last exercise, finish the workout instead.")
			return nil
		}
		s.moveTo(ctx, s.currentIndex+1)
		moved = true
		return nil
	})
	return moved, err
}

// PreviousExercise moves to the previous exercise, a no-op at the first one.
func (s *Session) PreviousExercise(ctx context.Context) (bool, error) {
	moved := false
	err := s.do(ctx, func() error {
		if s.currentIndex == 0 {
			return nil
		}
		s.moveTo(ctx, s.currentIndex-1)
		moved = true
		return nil
	})
	return moved, err
}

func (s *Session) moveTo(ctx context.Context, idx int) {
	if s.editing != nil {
		s.endEdit()
	}
	s.stopRest()
	s.currentIndex = idx
	s.autosave(ctx)
}

// SkipRest ends the rest period early, without a rest_over notification.
func (s *Session) SkipRest(ctx context.Context) error {
	return s.do(ctx, func() error {
		s.stopRest()
		return nil
	})
}

// SetExerciseNote stores the note for an exercise of the template. An empty note removes it.
func (s *Session) SetExerciseNote(ctx context.Context, exerciseID, note string) error {
	return s.do(ctx, func() error {
		if !s.template.HasExercise(exerciseID) {
			return workout.NewValidationError("exerciseId", fmt.Sprintf("exercise %s is not part of this workout", exerciseID))
		}
		if note == "" {
			delete(s.exerciseNotes, exerciseID)
		} else {
			s.exerciseNotes[exerciseID] = note
		}
		s.autosave(ctx)
		return nil
	})
}

// Suggestion derives the progression suggestion for the current exercise.
func (s *Session) Suggestion(ctx context.Context) (progression.Suggestion, error) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return progression.Suggestion{}, ErrSessionFinished
	}
	exerciseID := s.currentSlot().ExerciseID
	s.mu.Unlock()

	return s.engine.SuggestFor(ctx, exerciseID)
}

// ApplySuggestion copies the suggested weight and reps into the set form.
func (s *Session) ApplySuggestion(ctx context.Context) (workout.SetValues, error) {
	suggestion, err := s.Suggestion(ctx)
	if err != nil {
		return workout.SetValues{}, err
	}

	values, err := progression.ApplySuggestion(suggestion)
	if err != nil {
		return workout.SetValues{}, fmt.Errorf("%w: %w", ErrSuggestionNotApplicable, err)
	}

	var form workout.SetValues
	err = s.do(ctx, func() error {
		// the user may have moved on while the suggestion was computed
		if s.currentSlot().ExerciseID != suggestion.ExerciseID {
			return fmt.Errorf("%w: current exercise changed", ErrSuggestionNotApplicable)
		}
		s.form.Weight = values.Weight
		s.form.Reps = values.Reps
		form = s.form
		return nil
	})
	return form, err
}

// Finish submits the workout summary and discards the autosave snapshot. The
// snapshot is only discarded after the summary sink accepted the summary, and
// a rejected summary leaves the session untouched.
func (s *Session) Finish(ctx context.Context) (workout.Summary, error) {
	var summary workout.Summary
	err := s.do(ctx, func() error {
		now := s.engine.now()
		s.updateElapsed(now)

		summary = workout.NewSummary(
			s.engine.newID(),
			s.workoutID,
			s.template,
			s.recordedSets,
			s.exerciseNotes,
			s.startTime,
			now,
			s.elapsedSeconds,
		)

		if err := s.engine.sink.Submit(ctx, summary); err != nil {
			s.engine.metrics.CounterSummarySubmitFailures.Inc()
			log.WithField("workout", s.workoutID).Errorf("submit workout summary: %s", err)
			return &SummarySubmitError{Err: err}
		}

		if err := s.engine.autosaves.Delete(ctx, s.workoutID); err != nil {
			s.engine.metrics.CounterAutosaveFailures.Inc()
			log.WithField("workout", s.workoutID).Errorf("discard autosave after finish: %s", err)
		}

		s.editing = nil
		s.finished = true
		s.stopTimers()
		s.engine.metrics.CounterSessionsFinished.Inc()
		s.engine.metrics.HistSessionDuration.Observe(float64(summary.TotalTimeSeconds))
		return nil
	})
	return summary, err
}

// TickRest applies one step of the rest countdown. The rest task calls it every tick interval.
func (s *Session) TickRest() {
	s.mu.Lock()
	s.tickRest()
	out := s.drainOutbox()
	s.mu.Unlock()
	s.engine.dispatch(context.Background(), out)
}

// TickClock recomputes the elapsed time. The clock task calls it every tick interval.
func (s *Session) TickClock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clockRunning() {
		s.updateElapsed(s.engine.now())
	}
}

func (s *Session) tickRest() {
	if s.finished || !s.rest.Resting {
		return
	}
	s.rest.RemainingSeconds--
	if s.rest.RemainingSeconds > 0 {
		return
	}

	s.rest = NotResting()
	if s.restTask != nil {
		s.restTask.stop()
		s.restTask = nil
	}
	s.engine.metrics.CounterRestPeriodsCompleted.Inc()
	s.emit(NotificationRestOver, s.currentSlot().ExerciseID, "Rest is over, time for the next set.")
}

func (s *Session) onRestTick(t *tickTask) bool {
	s.mu.Lock()
	if s.restTask != t {
		s.mu.Unlock()
		return false
	}
	s.tickRest()
	running := s.restTask == t
	out := s.drainOutbox()
	s.mu.Unlock()

	s.engine.dispatch(context.Background(), out)
	return running
}

func (s *Session) onClockTick(t *tickTask) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clockTask != t {
		return false
	}
	if s.clockRunning() {
		s.updateElapsed(s.engine.now())
	}
	return true
}

func (s *Session) clockRunning() bool {
	return !s.finished && s.pausedAt == nil
}

func (s *Session) updateElapsed(now time.Time) {
	if s.pausedAt != nil {
		return
	}
	elapsed := int((now.Sub(s.startTime) - s.pausedTotal) / time.Second)
	if elapsed > s.elapsedSeconds {
		s.elapsedSeconds = elapsed
	}
}

func (s *Session) startRest(seconds int) {
	s.stopRest()
	if seconds <= 0 {
		return
	}
	s.rest = Resting(seconds, seconds)
	s.restTask = startTickTask(s.engine.tickInterval, s.engine.newTicker, s.onRestTick)
}

func (s *Session) stopRest() {
	s.rest = NotResting()
	if s.restTask != nil {
		s.restTask.stop()
		s.restTask = nil
	}
}

func (s *Session) startClock() {
	if s.clockTask != nil || s.finished {
		return
	}
	s.clockTask = startTickTask(s.engine.tickInterval, s.engine.newTicker, s.onClockTick)
}

func (s *Session) pauseClock() {
	if s.pausedAt == nil {
		now := s.engine.now()
		s.updateElapsed(now)
		s.pausedAt = &now
	}
	if s.clockTask != nil {
		s.clockTask.stop()
		s.clockTask = nil
	}
}

func (s *Session) resumeClock() {
	if s.pausedAt != nil {
		s.pausedTotal += s.engine.now().Sub(*s.pausedAt)
		s.pausedAt = nil
	}
	s.startClock()
}

func (s *Session) endEdit() {
	s.editing = nil
	s.form = s.formBeforeEdit
	s.formBeforeEdit = workout.SetValues{}
	s.resumeClock()
}

// stopTimers stops both timer tasks and returns them so the caller can wait
// for their goroutines outside the lock.
func (s *Session) stopTimers() []*tickTask {
	var tasks []*tickTask
	if s.restTask != nil {
		s.restTask.stop()
		tasks = append(tasks, s.restTask)
		s.restTask = nil
	}
	s.rest = NotResting()
	if s.clockTask != nil {
		s.clockTask.stop()
		tasks = append(tasks, s.clockTask)
		s.clockTask = nil
	}
	return tasks
}

func (s *Session) snapshot() workout.Snapshot {
	return workout.Snapshot{
		WorkoutID:            s.workoutID,
		TemplateID:           s.template.ID,
		TemplateName:         s.template.Name,
		Exercises:            append([]workout.ExerciseSlot(nil), s.template.Exercises...),
		RecordedSets:         s.recordedSets.Clone(),
		CurrentExerciseIndex: s.currentIndex,
		ExerciseNotes:        copyNotes(s.exerciseNotes),
		StartTime:            s.startTime,
		ElapsedSeconds:       s.elapsedSeconds,
		SavedAt:              s.engine.now(),
	}
}

// autosave writes the snapshot. A failed write never fails the operation,
// it is logged, counted and surfaced as a warning.
func (s *Session) autosave(ctx context.Context) {
	s.updateElapsed(s.engine.now())

	saveCtx, cancel := context.WithTimeout(ctx, autosaveTimeout)
	defer cancel()

	if err := s.engine.autosaves.Put(saveCtx, s.workoutID, s.snapshot()); err != nil {
		s.engine.metrics.CounterAutosaveFailures.Inc()
		log.WithField("workout", s.workoutID).Errorf("autosave: %s", err)
		s.autosaveWarning = "Progress could not be saved to storage, it is only kept in memory for now."
		s.emit(NotificationAutosaveFailed, "", s.autosaveWarning)
		return
	}
	s.autosaveWarning = ""
}

func (s *Session) emit(t NotificationType, exerciseID, message string) {
	n := Notification{
		Type:       t,
		WorkoutID:  s.workoutID,
		ExerciseID: exerciseID,
		Message:    message,
		Timestamp:  s.engine.now(),
	}
	s.outbox = append(s.outbox, n)
	s.notifications = append(s.notifications, n)
	if len(s.notifications) > maxRecentNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxRecentNotifications:]
	}
}

func (s *Session) drainOutbox() []Notification {
	out := s.outbox
	s.outbox = nil
	return out
}

// unload writes a final snapshot and stops the timers. Used when a live
// session is evicted from memory; the snapshot stays for a later resume.
func (s *Session) unload(ctx context.Context) error {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return nil
	}
	s.updateElapsed(s.engine.now())
	snapshot := s.snapshot()
	tasks := s.stopTimers()
	s.finished = true
	s.mu.Unlock()

	for _, t := range tasks {
		t.wait()
	}

	saveCtx, cancel := context.WithTimeout(ctx, autosaveTimeout)
	defer cancel()
	if err := s.engine.autosaves.Put(saveCtx, s.workoutID, snapshot); err != nil {
		s.engine.metrics.CounterAutosaveFailures.Inc()
		return fmt.Errorf("final autosave for [%s]: %w", s.workoutID, err)
	}
	return nil
}

func (s *Session) isFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func copyNotes(notes map[string]string) map[string]string {
	out := make(map[string]string, len(notes))
	for k, v := range notes {
		out[k] = v
	}
	return out
}

func describeRecordedSet(set workout.RecordedSet) string {
	if set.Weight.IsNotApplicable() {
		return set.Reps.String()
	}
	return fmt.Sprintf("%s x %s", set.Weight, set.Reps)
}
