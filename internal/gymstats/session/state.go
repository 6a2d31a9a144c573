package session

import (
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

// State is a read-only copy of a session, safe to serialize.
type State struct {
	WorkoutID            string                 `json:"workoutId"`
	TemplateID           string                 `json:"templateId"`
	TemplateName         string                 `json:"templateName"`
	Exercises            []workout.ExerciseSlot `json:"exercises"`
	CurrentExerciseIndex int                    `json:"currentExerciseIndex"`
	CurrentExercise      workout.ExerciseSlot   `json:"currentExercise"`
	IsLastExercise       bool                   `json:"isLastExercise"`
	RecordedSets         workout.RecordedSets   `json:"recordedSets"`
	ExerciseNotes        map[string]string      `json:"exerciseNotes"`
	StartTime            time.Time              `json:"startTime"`
	ElapsedSeconds       int                    `json:"elapsedSeconds"`
	ClockPaused          bool                   `json:"clockPaused"`
	Rest                 RestState              `json:"rest"`
	Editing              *EditingSet            `json:"editing,omitempty"`
	Form                 workout.SetValues      `json:"form"`
	AutosaveWarning      string                 `json:"autosaveWarning,omitempty"`
	Notifications        []Notification         `json:"notifications"`
	Finished             bool                   `json:"finished"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clockRunning() {
		s.updateElapsed(s.engine.now())
	}

	var editing *EditingSet
	if s.editing != nil {
		e := *s.editing
		editing = &e
	}

	return State{
		WorkoutID:            s.workoutID,
		TemplateID:           s.template.ID,
		TemplateName:         s.template.Name,
		Exercises:            append([]workout.ExerciseSlot(nil), s.template.Exercises...),
		CurrentExerciseIndex: s.currentIndex,
		CurrentExercise:      s.currentSlot(),
		IsLastExercise:       s.currentIndex == len(s.template.Exercises)-1,
		RecordedSets:         s.recordedSets.Clone(),
		ExerciseNotes:        copyNotes(s.exerciseNotes),
		StartTime:            s.startTime,
		ElapsedSeconds:       s.elapsedSeconds,
		ClockPaused:          s.pausedAt != nil,
		Rest:                 s.rest,
		Editing:              editing,
		Form:                 s.form,
		AutosaveWarning:      s.autosaveWarning,
		Notifications:        append([]Notification(nil), s.notifications...),
		Finished:             s.finished,
	}
}
