package pipeline

import (
	"testing"

	"github.com/milk9111/spriterig/anim"
)

func TestResolvePriority(t *testing.T) {
	cases := []struct {
		name string
		sn   Snapshot
		want anim.State
	}{
		{"all_false_idles", Snapshot{}, anim.Idle},
		{"moving_walks", Snapshot{Moving: true}, anim.Walk},
		{"working_works", Snapshot{Working: true}, anim.Work},
		{"working_beats_moving", Snapshot{Moving: true, Working: true}, anim.Work},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Resolve(c.sn); got != c.want {
				t.Fatalf("Resolve(%+v) = %s, want %s", c.sn, got, c.want)
			}
		})
	}
}

func TestResolveIsPure(t *testing.T) {
	snapshots := []Snapshot{
		{},
		{Moving: true},
		{Working: true},
		{Moving: true, Working: true},
	}
	for _, sn := range snapshots {
		first := Resolve(sn)
		for i := 0; i < 10; i++ {
			if got := Resolve(sn); got != first {
				t.Fatalf("Resolve(%+v) changed between calls: %s then %s", sn, first, got)
			}
		}
	}
}
