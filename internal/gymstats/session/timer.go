package session

import (
	"sync"
	"time"
)

const DefaultTickInterval = time.Second

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func NewTimeTicker(d time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(d)}
}

func (t *timeTicker) C() <-chan time.Time {
	return t.t.C
}

func (t *timeTicker) Stop() {
	t.t.Stop()
}

// tickTask runs onTick on every tick until stopped or until onTick returns false.
// stop never blocks, so it is safe to call while holding the session lock that
// onTick itself acquires.
type tickTask struct {
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func startTickTask(interval time.Duration, newTicker TickerFactory, onTick func(t *tickTask) bool) *tickTask {
	t := &tickTask{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	ticker := newTicker(interval)
	go func() {
		defer close(t.done)
		defer ticker.Stop()
		for {
			select {
			case <-t.quit:
				return
			case <-ticker.C():
				select {
				case <-t.quit:
					return
				default:
				}
				if !onTick(t) {
					return
				}
			}
		}
	}()

	return t
}

func (t *tickTask) stop() {
	t.stopOnce.Do(func() {
		close(t.quit)
	})
}

func (t *tickTask) wait() {
	<-t.done
}
