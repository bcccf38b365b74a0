package pipeline

import (
	"sync"
	"testing"
	"time"

	"github.com/milk9111/spriterig/anim"
)

// recordingView records every ApplyAnimation call for assertions.
type recordingView struct {
	mu    sync.Mutex
	calls []appliedCall
}

type appliedCall struct {
	row, frames   int
	fps           float64
	playing, loop bool
}

func (v *recordingView) ApplyAnimation(row, frameCount int, fps float64, playing, loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, appliedCall{row, frameCount, fps, playing, loop})
}

func (v *recordingView) callCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.calls)
}

func (v *recordingView) lastCall() appliedCall {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls[len(v.calls)-1]
}

func testTable() anim.Table {
	return anim.Table{
		anim.Idle: {Row: 0, Frames: 4, FPS: 6, Loop: true},
		anim.Walk: {Row: 13, Frames: 8, FPS: 10, Loop: true},
		anim.Work: {Row: 7, Frames: 6, FPS: 12, Loop: true},
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(testTable())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSessionRejectsBadTable(t *testing.T) {
	bad := testTable()
	delete(bad, anim.Work)
	if _, err := NewSession(bad); err == nil {
		t.Fatalf("NewSession should fail on a table missing a state")
	}
}

func TestCommitAppliesInitialStateOnce(t *testing.T) {
	s := newTestSession(t)
	view := &recordingView{}
	s.SetView(view)

	// scenario: all signals false from the start
	s.resolveTick()
	s.commitTick()

	if view.callCount() != 1 {
		t.Fatalf("expected 1 apply call, got %d", view.callCount())
	}
	got := view.lastCall()
	want := appliedCall{row: 0, frames: 4, fps: 6, playing: true, loop: true}
	if got != want {
		t.Fatalf("applied %+v, want %+v", got, want)
	}

	// further ticks with no change are silent
	for i := 0; i < 5; i++ {
		s.resolveTick()
		s.commitTick()
	}
	if view.callCount() != 1 {
		t.Fatalf("unchanged state should not re-apply; got %d calls", view.callCount())
	}
}

func TestCommitUsesResolvedStateConfig(t *testing.T) {
	s := newTestSession(t)
	view := &recordingView{}
	s.SetView(view)

	s.resolveTick()
	s.commitTick()

	if err := s.Signals().Set(SignalMoving, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.resolveTick()
	if s.Desired() != anim.Walk {
		t.Fatalf("desired = %s, want walk", s.Desired())
	}
	s.commitTick()

	got := view.lastCall()
	want := appliedCall{row: 13, frames: 8, fps: 10, playing: true, loop: true}
	if got != want {
		t.Fatalf("walk applied %+v, want %+v", got, want)
	}

	// work wins over walk when both signals are up
	if err := s.Signals().Set(SignalWorking, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.resolveTick()
	s.commitTick()

	got = view.lastCall()
	want = appliedCall{row: 7, frames: 6, fps: 12, playing: true, loop: true}
	if got != want {
		t.Fatalf("work applied %+v, want %+v", got, want)
	}
	if applied, ok := s.Applied(); !ok || applied != anim.Work {
		t.Fatalf("applied slot = %s (%v), want work", applied, ok)
	}
}

func TestCommitSkipsWhileViewMissing(t *testing.T) {
	s := newTestSession(t)

	if err := s.Signals().Set(SignalMoving, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.resolveTick()

	// several commit ticks with no view attached: nothing applied, change kept
	for i := 0; i < 4; i++ {
		s.commitTick()
	}
	if _, ok := s.Applied(); ok {
		t.Fatalf("nothing should be applied while the view is missing")
	}

	view := &recordingView{}
	s.SetView(view)
	s.commitTick()
	s.commitTick()

	// the pending change lands exactly once when the view appears
	if view.callCount() != 1 {
		t.Fatalf("expected 1 apply call after view attach, got %d", view.callCount())
	}
	if got := view.lastCall(); got.row != 13 {
		t.Fatalf("applied row %d, want walk row 13", got.row)
	}
}

func TestSignalFlickerObservedAtCommitTime(t *testing.T) {
	s := newTestSession(t)
	view := &recordingView{}
	s.SetView(view)

	s.resolveTick()
	s.commitTick() // idle applied
	base := view.callCount()

	// working flips on and back off before the next commit tick
	s.Signals().Set(SignalWorking, true)
	s.resolveTick()
	s.Signals().Set(SignalWorking, false)
	s.resolveTick()
	s.commitTick()

	// only the state holding at commit time is observed; idle never left
	if view.callCount() != base {
		t.Fatalf("flicker should not reach the view; got %d extra calls", view.callCount()-base)
	}
}

func TestSetTableForcesRecommit(t *testing.T) {
	s := newTestSession(t)
	view := &recordingView{}
	s.SetView(view)

	s.resolveTick()
	s.commitTick()

	faster := testTable()
	faster[anim.Idle] = anim.Config{Row: 0, Frames: 4, FPS: 9, Loop: true}
	if err := s.SetTable(faster); err != nil {
		t.Fatalf("SetTable: %v", err)
	}
	s.commitTick()

	if view.callCount() != 2 {
		t.Fatalf("table swap should re-push the current state; got %d calls", view.callCount())
	}
	if got := view.lastCall(); got.fps != 9 {
		t.Fatalf("re-push used fps %v, want the new table's 9", got.fps)
	}

	bad := testTable()
	delete(bad, anim.Idle)
	if err := s.SetTable(bad); err == nil {
		t.Fatalf("SetTable should reject an invalid table")
	}
}

func TestSessionLifecycle(t *testing.T) {
	s, err := NewSession(testTable(),
		WithResolvePeriod(2*time.Millisecond),
		WithCommitPeriod(3*time.Millisecond))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	view := &recordingView{}
	s.SetView(view)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Fatalf("second Start should fail")
	}

	s.Signals().Set(SignalMoving, true)

	deadline := time.Now().Add(time.Second)
	for view.callCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := view.lastCall(); got.row != 13 {
		t.Fatalf("running session applied row %d, want walk row 13", got.row)
	}

	s.Stop()
	s.Stop() // idempotent

	// no more view updates after Stop returns, even if signals keep changing
	after := view.callCount()
	s.Signals().Set(SignalWorking, true)
	time.Sleep(20 * time.Millisecond)
	if view.callCount() != after {
		t.Fatalf("view updated after Stop: %d -> %d", after, view.callCount())
	}

	if err := s.Start(); err == nil {
		t.Fatalf("Start after Stop should fail")
	}
}

func TestStopBeforeStart(t *testing.T) {
	s := newTestSession(t)
	s.Stop() // a never-started session stops cleanly
	if err := s.Start(); err == nil {
		t.Fatalf("Start after Stop should fail")
	}
}
