package events

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=events_test

type eventsRepo interface {
	Add(ctx context.Context, event Event) (_ *Event, err error)
	List(ctx context.Context, params ListParams) (_ []*Event, err error)
	Count(ctx context.Context, params EventParams) (int, error)
}

// Service records workout lifecycle events for the session engine.
type Service struct {
	repo eventsRepo
}

func NewService(repo eventsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) add(ctx context.Context, spanName string, event Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, spanName)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	added, err := s.repo.Add(ctx, event)
	if err != nil {
		return fmt.Errorf("add %s event: %w", event.Type, err)
	}
	log.Tracef("event %s added: %d", added.Type, added.ID)
	return nil
}

func (s *Service) TrainingStarted(ctx context.Context, workoutID, templateName string, at time.Time, resumed bool) error {
	return s.add(
		ctx,
		"service.gymstats.events.add.trainingstart",
		NewTrainingStartEvent(workoutID, templateName, at, resumed),
	)
}

func (s *Service) TrainingFinished(ctx context.Context, summary workout.Summary) error {
	return s.add(
		ctx,
		"service.gymstats.events.add.trainingfinish",
		NewTrainingFinishEvent(summary),
	)
}

func (s *Service) AutosaveDiscarded(ctx context.Context, workoutID string, at time.Time) error {
	return s.add(
		ctx,
		"service.gymstats.events.add.autosavediscarded",
		NewAutosaveDiscardedEvent(workoutID, at),
	)
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.events.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *Service) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.events.count")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	count, err := s.repo.Count(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
