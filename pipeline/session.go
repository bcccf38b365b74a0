package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/milk9111/spriterig/anim"
)

// ViewBinding is the rendered surface the commit loop pushes clip changes to.
// ApplyAnimation is imperative and fire-and-forget; callers may assume it is
// idempotent when invoked twice with identical arguments.
type ViewBinding interface {
	ApplyAnimation(row, frameCount int, fps float64, playing, loop bool)
}

// Default tick periods. Resolution samples signals faster than commits push
// to the view; the two cadences are deliberately independent.
const (
	DefaultResolvePeriod = 50 * time.Millisecond
	DefaultCommitPeriod  = 80 * time.Millisecond
)

// session lifecycle states.
const (
	sessionNew = iota
	sessionRunning
	sessionStopped
)

// Option configures a Session.
type Option func(*Session)

// WithResolvePeriod overrides the resolver tick period.
func WithResolvePeriod(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.resolvePeriod = d
		}
	}
}

// WithCommitPeriod overrides the commit tick period.
func WithCommitPeriod(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.commitPeriod = d
		}
	}
}

// Session owns the whole animation pipeline for one run: the signal store,
// the desired/applied state slots, the clip table, and the two tick loops.
// All shared slots live on the session, never in package state.
type Session struct {
	signals *Signals

	resolvePeriod time.Duration
	commitPeriod  time.Duration

	mu           sync.Mutex
	table        anim.Table
	desired      anim.State
	applied      anim.State
	appliedValid bool
	view         ViewBinding
	lifecycle    int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession creates a stopped session over a validated clip table. An
// invalid table is a setup defect and fails here, before any tick runs.
func NewSession(table anim.Table, opts ...Option) (*Session, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("clip table: %w", err)
	}
	s := &Session{
		signals:       NewSignals(),
		resolvePeriod: DefaultResolvePeriod,
		commitPeriod:  DefaultCommitPeriod,
		table:         table,
		desired:       anim.Idle,
		applied:       anim.Idle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Signals returns the session's signal store. External producers write
// through it at any time.
func (s *Session) Signals() *Signals { return s.signals }

// SetView attaches or detaches (nil) the view binding. While detached, commit
// ticks skip and the pending desired state is retried once a binding is back.
func (s *Session) SetView(v ViewBinding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// SetTable swaps in a new validated clip table and forces the next commit
// tick to re-push the current state so the new parameters take effect.
func (s *Session) SetTable(table anim.Table) error {
	if err := table.Validate(); err != nil {
		return fmt.Errorf("clip table: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
	s.appliedValid = false
	return nil
}

// Desired returns the most recently resolved state.
func (s *Session) Desired() anim.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desired
}

// Applied returns the state last pushed to the view, and whether anything has
// been pushed yet.
func (s *Session) Applied() (anim.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied, s.appliedValid
}

// Start launches the resolve and commit loops. A session starts at most once.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.lifecycle {
	case sessionRunning:
		return fmt.Errorf("session already running")
	case sessionStopped:
		return fmt.Errorf("session already stopped")
	}
	s.lifecycle = sessionRunning

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(2)
	go s.resolveLoop(ctx)
	go s.commitLoop(ctx)
	return nil
}

// Stop cancels both loops and waits for any in-flight tick to finish. After
// Stop returns, the view receives no further updates. Stop is idempotent.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.lifecycle != sessionRunning {
		s.lifecycle = sessionStopped
		s.mu.Unlock()
		return
	}
	s.lifecycle = sessionStopped
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
}

func (s *Session) resolveLoop(ctx context.Context) {
	defer s.wg.Done()
	t := time.NewTicker(s.resolvePeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.resolveTick()
		}
	}
}

func (s *Session) commitLoop(ctx context.Context) {
	defer s.wg.Done()
	t := time.NewTicker(s.commitPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.commitTick()
		}
	}
}

// resolveTick samples the signals and writes the resolved state into the
// desired slot. The write happens every tick even when unchanged; it is cheap
// and keeps the tick body branch-free.
func (s *Session) resolveTick() {
	state := Resolve(s.signals.Snapshot())
	s.mu.Lock()
	s.desired = state
	s.mu.Unlock()
}

// commitTick reconciles the desired state against the view. It pushes at most
// one update, and only when the desired state differs from what the view
// already shows. A missing view binding skips the tick; the pending change is
// retried on the next one.
func (s *Session) commitTick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return
	}
	if s.appliedValid && s.applied == s.desired {
		return
	}
	cfg := s.table.Get(s.desired)
	s.view.ApplyAnimation(cfg.Row, cfg.Frames, cfg.FPS, true, cfg.Loop)
	s.applied = s.desired
	s.appliedValid = true
}
