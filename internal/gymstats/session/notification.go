package session

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotificationRestOver       NotificationType = "rest_over"
	NotificationSetSaved       NotificationType = "set_saved"
	NotificationLastExercise   NotificationType = "last_exercise"
	NotificationAutosaveFailed NotificationType = "autosave_failed"
)

type Notification struct {
	Type       NotificationType `json:"type"`
	WorkoutID  string           `json:"workoutId"`
	ExerciseID string           `json:"exerciseId,omitempty"`
	Message    string           `json:"message"`
	Timestamp  time.Time        `json:"timestamp"`
}

// maxRecentNotifications bounds the notifications kept in the session view.
const maxRecentNotifications = 20

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Notification) {}
