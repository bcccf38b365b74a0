package anim

import "fmt"

// Config holds the immutable playback parameters for one clip: which sprite
// sheet row it lives on, how many frames it spans, and how it plays back.
type Config struct {
	Row    int
	Frames int
	FPS    float64
	Loop   bool
}

// Table maps every State in the closed set to its Config. A table is built
// once at startup and validated before use; after that, lookups never miss.
type Table map[State]Config

// Validate checks that every state has a playable config. A missing or
// unplayable entry is a setup defect and should abort startup.
func (t Table) Validate() error {
	for _, s := range States() {
		cfg, ok := t[s]
		if !ok {
			return fmt.Errorf("no clip config for state %q", s)
		}
		if cfg.Row < 0 {
			return fmt.Errorf("clip %q: negative row %d", s, cfg.Row)
		}
		if cfg.Frames <= 0 {
			return fmt.Errorf("clip %q: frame count %d, want at least 1", s, cfg.Frames)
		}
		if cfg.FPS <= 0 {
			return fmt.Errorf("clip %q: fps %v, want > 0", s, cfg.FPS)
		}
	}
	return nil
}

// Get returns the config for a state. Callers validate the table at startup,
// so a miss here means the closed set grew without a config; the zero Config
// is returned rather than panicking.
func (t Table) Get(s State) Config {
	return t[s]
}
