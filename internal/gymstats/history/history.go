package history

import (
	"errors"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

const DefaultPastSessionsLimit = 10

var ErrSessionNotFound = errors.New("workout session not found")

// SessionRecord is a finished workout without its sets.
type SessionRecord struct {
	ID               string    `json:"id"`
	WorkoutID        string    `json:"workoutId"`
	TemplateID       string    `json:"templateId"`
	TemplateName     string    `json:"templateName"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	TotalTimeSeconds int       `json:"totalTimeSeconds"`
	SetCount         int       `json:"setCount"`
}

type ListSessionsParams struct {
	WorkoutID string
	From      time.Time
	To        time.Time
	Limit     int
}

// SetEntry is one stored set, flattened with the start time of its session.
type SetEntry struct {
	SessionID   string              `json:"sessionId"`
	ExerciseID  string              `json:"exerciseId"`
	SetNumber   int                 `json:"setNumber"`
	Weight      workout.Measurement `json:"weight"`
	Reps        workout.Measurement `json:"reps"`
	RPE         *int                `json:"rpe,omitempty"`
	PerformedAt time.Time           `json:"performedAt"`
}
