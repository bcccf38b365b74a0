package pipeline

import (
	"fmt"
	"sync"
)

// Signal names one of the boolean inputs the pipeline samples. The set of
// signals is closed; producers referencing any other name are rejected at the
// call boundary.
type Signal string

const (
	SignalMoving  Signal = "moving"
	SignalWorking Signal = "working"
)

// ParseSignal maps a signal name to its Signal. Unknown names are a caller
// defect, not a runtime condition.
func ParseSignal(name string) (Signal, error) {
	switch Signal(name) {
	case SignalMoving, SignalWorking:
		return Signal(name), nil
	}
	return "", fmt.Errorf("unknown signal %q", name)
}

// Snapshot is a point-in-time copy of every signal value. Resolution rules
// operate on snapshots so a decision never straddles a concurrent write.
type Snapshot struct {
	Moving  bool
	Working bool
}

// Signals stores the latest externally produced signal values. Writes are
// last-write-wins per signal and safe against concurrent readers; the
// pipeline samples them at its own tick rate regardless of how often
// producers call Set.
type Signals struct {
	mu      sync.Mutex
	moving  bool
	working bool
}

// NewSignals creates a signal store with every signal false.
func NewSignals() *Signals {
	return &Signals{}
}

// Set records a signal value. Unknown signals return an error and leave the
// store untouched.
func (s *Signals) Set(name Signal, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case SignalMoving:
		s.moving = value
	case SignalWorking:
		s.working = value
	default:
		return fmt.Errorf("unknown signal %q", name)
	}
	return nil
}

// Get reads a single signal value.
func (s *Signals) Get(name Signal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case SignalMoving:
		return s.moving, nil
	case SignalWorking:
		return s.working, nil
	}
	return false, fmt.Errorf("unknown signal %q", name)
}

// Snapshot copies every signal value under one lock acquisition.
func (s *Signals) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Moving: s.moving, Working: s.working}
}
