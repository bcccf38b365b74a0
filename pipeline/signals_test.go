package pipeline

import (
	"sync"
	"testing"
)

func TestSignalsSetGet(t *testing.T) {
	s := NewSignals()

	for _, name := range []Signal{SignalMoving, SignalWorking} {
		v, err := s.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if v {
			t.Fatalf("signal %s should start false", name)
		}
	}

	if err := s.Set(SignalMoving, true); err != nil {
		t.Fatalf("Set(moving): %v", err)
	}
	if v, _ := s.Get(SignalMoving); !v {
		t.Fatalf("moving should be true after Set")
	}
	if v, _ := s.Get(SignalWorking); v {
		t.Fatalf("working should be unaffected by a moving write")
	}

	// last write wins
	if err := s.Set(SignalMoving, false); err != nil {
		t.Fatalf("Set(moving, false): %v", err)
	}
	if v, _ := s.Get(SignalMoving); v {
		t.Fatalf("moving should be false after second Set")
	}
}

func TestSignalsUnknownName(t *testing.T) {
	s := NewSignals()
	s.Set(SignalWorking, true)

	if err := s.Set(Signal("jumping"), true); err == nil {
		t.Fatalf("Set with unknown signal should fail")
	}
	if _, err := s.Get(Signal("jumping")); err == nil {
		t.Fatalf("Get with unknown signal should fail")
	}

	// the store is untouched by the rejected write
	sn := s.Snapshot()
	if sn.Moving || !sn.Working {
		t.Fatalf("rejected write corrupted the store: %+v", sn)
	}
}

func TestParseSignal(t *testing.T) {
	cases := []struct {
		in      string
		want    Signal
		wantErr bool
	}{
		{"moving", SignalMoving, false},
		{"working", SignalWorking, false},
		{"jumping", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseSignal(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseSignal(%q) should fail", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSignal(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseSignal(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestSignalsConcurrentWrites(t *testing.T) {
	s := NewSignals()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := SignalMoving
			if i%2 == 0 {
				name = SignalWorking
			}
			for j := 0; j < 100; j++ {
				_ = s.Set(name, j%2 == 0)
				s.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	// values end on the last write of each writer's loop (j=99, odd, false)
	sn := s.Snapshot()
	if sn.Moving || sn.Working {
		t.Fatalf("expected both signals false after writers finish, got %+v", sn)
	}
}
