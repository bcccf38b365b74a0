// Package scenario replays scripted signal changes against the pipeline's
// signal store, standing in for a real external input source (controller,
// network replication, game logic).
package scenario

import (
	"fmt"
	"sort"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/spriterig/pipeline"
)

// Step sets one signal to a value at a fixed offset from scenario start.
type Step struct {
	At     time.Duration
	Signal pipeline.Signal
	Value  bool
}

// Scenario is a parsed scenario script: an ordered list of signal steps and
// whether the sequence repeats.
type Scenario struct {
	Steps []Step
	Loop  bool
}

// Load compiles and runs a tengo scenario script and extracts its `steps`
// array (and optional `loop` flag). Each step is a map with `at`
// (milliseconds from start), `signal` (name) and `value` (bool).
func Load(src []byte) (*Scenario, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "times", "rand"))

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("run scenario script: %w", err)
	}

	stepsVar := compiled.Get("steps")
	if stepsVar == nil || stepsVar.IsUndefined() {
		return nil, fmt.Errorf("scenario script defines no `steps` array")
	}
	rawSteps, ok := stepsVar.Value().([]interface{})
	if !ok {
		return nil, fmt.Errorf("scenario `steps` is not an array")
	}

	sc := &Scenario{}
	if loopVar := compiled.Get("loop"); loopVar != nil && !loopVar.IsUndefined() {
		sc.Loop = loopVar.Bool()
	}

	for i, rawStep := range rawSteps {
		m, ok := rawStep.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("scenario step %d is not a map", i)
		}
		step, err := parseStep(m)
		if err != nil {
			return nil, fmt.Errorf("scenario step %d: %w", i, err)
		}
		sc.Steps = append(sc.Steps, step)
	}

	sort.SliceStable(sc.Steps, func(a, b int) bool {
		return sc.Steps[a].At < sc.Steps[b].At
	})
	return sc, nil
}

func parseStep(m map[string]interface{}) (Step, error) {
	at, ok := m["at"].(int64)
	if !ok || at < 0 {
		return Step{}, fmt.Errorf("`at` must be a non-negative millisecond offset")
	}
	name, ok := m["signal"].(string)
	if !ok {
		return Step{}, fmt.Errorf("`signal` must be a string")
	}
	sig, err := pipeline.ParseSignal(name)
	if err != nil {
		return Step{}, err
	}
	value, ok := m["value"].(bool)
	if !ok {
		return Step{}, fmt.Errorf("`value` must be a bool")
	}
	return Step{At: time.Duration(at) * time.Millisecond, Signal: sig, Value: value}, nil
}
