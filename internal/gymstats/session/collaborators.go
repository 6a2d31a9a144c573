package session

import (
	"context"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/progression"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

//go:generate mockgen -source=$GOFILE -destination=collaborators_mocks_test.go -package=session_test

type TemplateSource interface {
	// GetTemplateByID returns workout.ErrTemplateNotFound when the template does not exist.
	GetTemplateByID(ctx context.Context, workoutID string) (workout.Template, error)
}

type ExerciseCatalog interface {
	GetExerciseMetadata(ctx context.Context, exerciseID string) (workout.ExerciseMetadata, error)
}

type HistoryProvider interface {
	GetPastSessions(ctx context.Context, exerciseID string) ([]workout.PastSession, error)
}

type RulesProvider interface {
	GetProgressionRules(ctx context.Context) (progression.Rules, error)
}

type AutosaveStore interface {
	// Get returns workout.ErrSnapshotNotFound when nothing is stored for the workout,
	// and workout.ErrSnapshotCorrupted when the stored value cannot be decoded.
	Get(ctx context.Context, workoutID string) (*workout.Snapshot, error)
	Put(ctx context.Context, workoutID string, snapshot workout.Snapshot) error
	Delete(ctx context.Context, workoutID string) error
}

type SummarySink interface {
	Submit(ctx context.Context, summary workout.Summary) error
}

// Notifier delivers user visible signals. Implementations handle their own errors.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// EventRecorder stores workout lifecycle events. Failures are logged, never propagated.
type EventRecorder interface {
	TrainingStarted(ctx context.Context, workoutID, templateName string, at time.Time, resumed bool) error
	TrainingFinished(ctx context.Context, summary workout.Summary) error
	AutosaveDiscarded(ctx context.Context, workoutID string, at time.Time) error
}
