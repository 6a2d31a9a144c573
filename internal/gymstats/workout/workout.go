package workout

import (
	"time"
)

// DefaultRestSeconds is used when an exercise slot has no rest hint.
const DefaultRestSeconds = 60

// Template is the plan for a workout session. Exercise IDs may repeat (supersets).
type Template struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Exercises []ExerciseSlot `json:"exercises" yaml:"exercises"`
}

type ExerciseSlot struct {
	ExerciseID         string `json:"exerciseId" yaml:"exercise_id"`
	DefaultSets        *int   `json:"defaultSets,omitempty" yaml:"default_sets,omitempty"`
	DefaultReps        string `json:"defaultReps,omitempty" yaml:"default_reps,omitempty"`
	DefaultRestSeconds *int   `json:"defaultRestSeconds,omitempty" yaml:"default_rest_seconds,omitempty"`
}

// RestSeconds returns the slot rest hint, or fallback when it is not set.
func (s ExerciseSlot) RestSeconds(fallback int) int {
	if s.DefaultRestSeconds != nil && *s.DefaultRestSeconds > 0 {
		return *s.DefaultRestSeconds
	}
	return fallback
}

func (t Template) HasExercise(exerciseID string) bool {
	for _, ex := range t.Exercises {
		if ex.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}

type RecordedSet struct {
	SetNumber int         `json:"setNumber"`
	Weight    Measurement `json:"weight"`
	Reps      Measurement `json:"reps"`
	RPE       *int        `json:"rpe,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}

// SetValues are the raw values entered in the set form.
type SetValues struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
	RPE    *int   `json:"rpe,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// RecordedSets maps an exercise ID to its sets, in recording order.
type RecordedSets map[string][]RecordedSet

func (rs RecordedSets) Clone() RecordedSets {
	out := make(RecordedSets, len(rs))
	for exID, sets := range rs {
		cp := make([]RecordedSet, len(sets))
		copy(cp, sets)
		out[exID] = cp
	}
	return out
}

// Renumber sets setNumber of all sets for exerciseID to 1..N in slice order.
func (rs RecordedSets) Renumber(exerciseID string) {
	sets := rs[exerciseID]
	for i := range sets {
		sets[i].SetNumber = i + 1
	}
}

func (rs RecordedSets) Count() int {
	total := 0
	for _, sets := range rs {
		total += len(sets)
	}
	return total
}

func cloneNotes(notes map[string]string) map[string]string {
	out := make(map[string]string, len(notes))
	for k, v := range notes {
		out[k] = v
	}
	return out
}

// Snapshot is the durable projection of a live session used for resume.
type Snapshot struct {
	WorkoutID            string            `json:"workoutId"`
	TemplateID           string            `json:"templateId"`
	TemplateName         string            `json:"templateName"`
	Exercises            []ExerciseSlot    `json:"exercises"`
	RecordedSets         RecordedSets      `json:"recordedSets"`
	CurrentExerciseIndex int               `json:"currentExerciseIndex"`
	ExerciseNotes        map[string]string `json:"exerciseNotes"`
	StartTime            time.Time         `json:"startTime"`
	ElapsedSeconds       int               `json:"elapsedSeconds"`
	SavedAt              time.Time         `json:"savedAt"`
}

func (s Snapshot) Template() Template {
	return Template{
		ID:        s.TemplateID,
		Name:      s.TemplateName,
		Exercises: s.Exercises,
	}
}

// Summary is handed to the history store when a session is finished.
type Summary struct {
	ID               string            `json:"id"`
	WorkoutID        string            `json:"workoutId"`
	TemplateID       string            `json:"templateId"`
	TemplateName     string            `json:"templateName"`
	StartTime        time.Time         `json:"startTime"`
	EndTime          time.Time         `json:"endTime"`
	TotalTimeSeconds int               `json:"totalTimeSeconds"`
	RecordedSets     RecordedSets      `json:"recordedSets"`
	Exercises        []ExerciseSlot    `json:"exercises"`
	ExerciseNotes    map[string]string `json:"exerciseNotes"`
}

func NewSummary(
	id string,
	workoutID string,
	template Template,
	sets RecordedSets,
	notes map[string]string,
	start, end time.Time,
	totalSeconds int,
) Summary {
	return Summary{
		ID:               id,
		WorkoutID:        workoutID,
		TemplateID:       template.ID,
		TemplateName:     template.Name,
		StartTime:        start,
		EndTime:          end,
		TotalTimeSeconds: totalSeconds,
		RecordedSets:     sets.Clone(),
		Exercises:        append([]ExerciseSlot(nil), template.Exercises...),
		ExerciseNotes:    cloneNotes(notes),
	}
}

// PastSession is one historical session as seen by the progression logic.
type PastSession struct {
	Date          time.Time      `json:"date"`
	SetsPerformed []PerformedSet `json:"setsPerformed"`
}

type PerformedSet struct {
	Weight Measurement `json:"weight"`
	Reps   Measurement `json:"reps"`
}

// ExerciseMetadata is the catalog entry of an exercise.
type ExerciseMetadata struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	MuscleGroup  string `json:"muscleGroup,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
}
