package pipeline

import "github.com/milk9111/spriterig/anim"

// rule pairs a predicate over a signal snapshot with the clip it selects.
type rule struct {
	when  func(Snapshot) bool
	state anim.State
}

// rules are evaluated top to bottom and the first match wins, so the table
// order IS the priority order. The last entry matches everything, which makes
// resolution total.
var rules = []rule{
	{when: func(sn Snapshot) bool { return sn.Working }, state: anim.Work},
	{when: func(sn Snapshot) bool { return sn.Moving }, state: anim.Walk},
	{when: func(Snapshot) bool { return true }, state: anim.Idle},
}

// Resolve maps a signal snapshot to the single desired animation state. It is
// a pure function: the same snapshot always resolves to the same state.
func Resolve(sn Snapshot) anim.State {
	for _, r := range rules {
		if r.when(sn) {
			return r.state
		}
	}
	return anim.Idle
}
