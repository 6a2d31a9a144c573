package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

const jobTimeout = time.Minute

type idleUnloader interface {
	UnloadIdle(ctx context.Context, idleFor time.Duration) int
}

// Scheduler periodically unloads workout sessions nobody touched for a while.
// Their final snapshot stays in the autosave store, so they can be resumed later.
type Scheduler struct {
	cron     *cron.Cron
	unloader idleUnloader
	idleFor  time.Duration
}

func NewScheduler(spec string, unloader idleUnloader, idleFor time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		unloader: unloader,
		idleFor:  idleFor,
	}
	if err := s.cron.AddFunc(spec, s.UnloadIdle); err != nil {
		return nil, fmt.Errorf("add housekeeping job [%s]: %w", spec, err)
	}
	return s, nil
}

// UnloadIdle runs one housekeeping pass.
func (s *Scheduler) UnloadIdle() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if unloaded := s.unloader.UnloadIdle(ctx, s.idleFor); unloaded > 0 {
		log.Infof("housekeeping: unloaded %d idle sessions (idle for > %s)", unloaded, s.idleFor)
	} else {
		log.Trace("housekeeping: no idle sessions")
	}
}

func (s *Scheduler) Start() {
	log.Debugf("housekeeping started, unloading sessions idle for more than %s", s.idleFor)
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
