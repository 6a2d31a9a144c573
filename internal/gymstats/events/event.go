package events

import (
	"strconv"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

// Event (DB level type) is a workout lifecycle event:
//   - training started (fresh or resumed from an autosave)
//   - training finished (with the summary id, duration and set count)
//   - autosave discarded
type Event struct {
	ID        int               `json:"id"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

func NewTrainingStartEvent(workoutID, templateName string, at time.Time, resumed bool) Event {
	return Event{
		Type:      EventTypeTrainingStarted,
		Timestamp: at,
		Data: map[string]string{
			"workout_id":    workoutID,
			"template_name": templateName,
			"resumed":       strconv.FormatBool(resumed),
		},
	}
}

func NewTrainingFinishEvent(summary workout.Summary) Event {
	sets := 0
	for _, exSets := range summary.RecordedSets {
		sets += len(exSets)
	}
	return Event{
		Type:      EventTypeTrainingFinished,
		Timestamp: summary.EndTime,
		Data: map[string]string{
			"workout_id":         summary.WorkoutID,
			"template_name":      summary.TemplateName,
			"summary_id":         summary.ID,
			"total_time_seconds": strconv.Itoa(summary.TotalTimeSeconds),
			"sets":               strconv.Itoa(sets),
		},
	}
}

func NewAutosaveDiscardedEvent(workoutID string, at time.Time) Event {
	return Event{
		Type:      EventTypeAutosaveDiscarded,
		Timestamp: at,
		Data: map[string]string{
			"workout_id": workoutID,
		},
	}
}

// EventType can be one of:
//   - training_started
//   - training_finished
//   - autosave_discarded
type EventType string

const (
	EventTypeTrainingStarted   EventType = "training_started"
	EventTypeTrainingFinished  EventType = "training_finished"
	EventTypeAutosaveDiscarded EventType = "autosave_discarded"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeTrainingStarted,
		EventTypeTrainingFinished,
		EventTypeAutosaveDiscarded:
		return true
	default:
		return false
	}
}
