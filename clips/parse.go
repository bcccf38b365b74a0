package clips

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/spriterig/anim"
)

type rawClip struct {
	Row    int     `yaml:"row"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

type rawFile struct {
	Clips map[string]rawClip `yaml:"clips"`
}

// Parse decodes a clips yaml document into a validated animation table. A
// clip name outside the closed state set, or a state with no clip, is an
// error; the demo should refuse to start on a bad table rather than fall over
// mid-run.
func Parse(data []byte) (anim.Table, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse clips yaml: %w", err)
	}
	if len(raw.Clips) == 0 {
		return nil, fmt.Errorf("clips yaml has no clips")
	}

	table := make(anim.Table, len(raw.Clips))
	for name, c := range raw.Clips {
		state, err := anim.ParseState(name)
		if err != nil {
			return nil, err
		}
		table[state] = anim.Config{
			Row:    c.Row,
			Frames: c.Frames,
			FPS:    c.FPS,
			Loop:   c.Loop,
		}
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
