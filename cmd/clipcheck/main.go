// clipcheck validates clip table yaml files without starting the demo. It
// catches the same configuration errors the demo fails fast on at startup:
// unknown clip names, missing states, bad frame counts or rates.
//
// Usage:
//
//	clipcheck [file ...]
//
// With no arguments it checks the embedded default table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/spriterig/anim"
	"github.com/milk9111/spriterig/clips"
)

func main() {
	quiet := flag.Bool("q", false, "only report errors")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		files = []string{clips.DefaultFile}
	}

	failed := false
	for _, f := range files {
		table, err := check(f)
		if err != nil {
			log.Printf("%s: %v", f, err)
			failed = true
			continue
		}
		if *quiet {
			continue
		}
		fmt.Printf("%s: ok\n", f)
		for _, s := range anim.States() {
			cfg := table.Get(s)
			fmt.Printf("  %-6s row=%d frames=%d fps=%g loop=%v\n", s, cfg.Row, cfg.Frames, cfg.FPS, cfg.Loop)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func check(path string) (anim.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to the clips package's disk-then-embed lookup so the bare
		// default name works from anywhere
		data, err = clips.Load(path)
		if err != nil {
			return nil, err
		}
	}
	return clips.Parse(data)
}
