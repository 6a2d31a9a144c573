package templates

import (
	"context"
	"errors"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

type Source interface {
	GetTemplateByID(ctx context.Context, workoutID string) (workout.Template, error)
}

// Chain asks each source in order and returns the first template found.
type Chain []Source

func NewChain(sources ...Source) Chain {
	return sources
}

func (c Chain) GetTemplateByID(ctx context.Context, workoutID string) (workout.Template, error) {
	for _, s := range c {
		template, err := s.GetTemplateByID(ctx, workoutID)
		if errors.Is(err, workout.ErrTemplateNotFound) {
			continue
		}
		return template, err
	}
	return workout.Template{}, workout.ErrTemplateNotFound
}
