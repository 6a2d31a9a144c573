package notify

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/session"
)

// LogNotifier writes every notification to the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n session.Notification) {
	log.WithFields(log.Fields{
		"workout":  n.WorkoutID,
		"type":     n.Type,
		"exercise": n.ExerciseID,
	}).Info(n.Message)
}

// Multi delivers each notification to all of its notifiers, in order.
type Multi []session.Notifier

func NewMulti(notifiers ...session.Notifier) Multi {
	var m Multi
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m Multi) Notify(ctx context.Context, n session.Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}
