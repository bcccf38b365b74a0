package scenario

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/milk9111/spriterig/pipeline"
)

// loopTail pads the end of a looping scenario so the final signal state stays
// visible before the sequence restarts.
const loopTail = time.Second

// Runner replays a scenario's steps against a signal setter on its own
// goroutine.
type Runner struct {
	scenario *Scenario
	set      func(name pipeline.Signal, value bool) error

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewRunner creates a runner that applies steps through `set`. The setter is
// called from the runner's goroutine.
func NewRunner(sc *Scenario, set func(name pipeline.Signal, value bool) error) *Runner {
	return &Runner{scenario: sc, set: set}
}

// Start begins replaying the scenario from offset zero.
func (r *Runner) Start() {
	if r == nil || r.scenario == nil || len(r.scenario.Steps) == 0 || r.set == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go r.run(ctx)
}

// Stop halts replay. Idempotent; after Stop returns no further signal writes
// happen.
func (r *Runner) Stop() {
	if r == nil || r.cancel == nil {
		return
	}
	r.once.Do(func() {
		r.cancel()
		r.wg.Wait()
	})
}

func (r *Runner) run(ctx context.Context) {
	defer r.wg.Done()
	for {
		start := time.Now()
		for _, step := range r.scenario.Steps {
			if !sleepUntil(ctx, start.Add(step.At)) {
				return
			}
			if err := r.set(step.Signal, step.Value); err != nil {
				log.Printf("scenario: set %s=%v: %v", step.Signal, step.Value, err)
			}
		}
		if !r.scenario.Loop {
			return
		}
		last := r.scenario.Steps[len(r.scenario.Steps)-1].At
		if !sleepUntil(ctx, start.Add(last+loopTail)) {
			return
		}
	}
}

func sleepUntil(ctx context.Context, t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
