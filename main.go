package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/spriterig/assets"
	"github.com/milk9111/spriterig/clips"
	"github.com/milk9111/spriterig/pipeline"
	"github.com/milk9111/spriterig/scenario"
)

func main() {
	clipsFile := flag.String("clips", clips.DefaultFile, "clip table yaml in clips/ (basename, disk copy preferred over embedded)")
	scenarioName := flag.String("scenario", "", "scenario script in scenario/scripts/ (basename, .tengo optional)")
	watch := flag.Bool("watch", false, "reload the clip table when the yaml changes on disk")
	debug := flag.Bool("debug", false, "overlay signal and pipeline state")
	resolveMS := flag.Int("resolve-ms", 0, "resolver tick period in ms (0 = default)")
	commitMS := flag.Int("commit-ms", 0, "commit tick period in ms (0 = default)")
	flag.Parse()

	data, err := clips.Load(*clipsFile)
	if err != nil {
		log.Fatalf("load clips %s: %v", *clipsFile, err)
	}
	table, err := clips.Parse(data)
	if err != nil {
		log.Fatalf("parse clips %s: %v", *clipsFile, err)
	}

	var opts []pipeline.Option
	if *resolveMS > 0 {
		opts = append(opts, pipeline.WithResolvePeriod(time.Duration(*resolveMS)*time.Millisecond))
	}
	if *commitMS > 0 {
		opts = append(opts, pipeline.WithCommitPeriod(time.Duration(*commitMS)*time.Millisecond))
	}
	session, err := pipeline.NewSession(table, opts...)
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	view := NewSpriteView(assets.WorkerSheet, assets.WorkerFrameWidth, assets.WorkerFrameHeight)
	session.SetView(view)

	var reload <-chan string
	if *watch {
		watcher, err := clips.NewWatcher("clips")
		if err != nil {
			log.Printf("clip watcher disabled: %v", err)
		} else {
			defer watcher.Close()
			reload = watcher.Events
			go func() {
				for err := range watcher.Errors {
					log.Printf("clip watcher: %v", err)
				}
			}()
		}
	}

	var runner *scenario.Runner
	if *scenarioName != "" {
		src, err := scenario.LoadScript(*scenarioName)
		if err != nil {
			log.Fatalf("load scenario %s: %v", *scenarioName, err)
		}
		sc, err := scenario.Load(src)
		if err != nil {
			log.Fatalf("scenario %s: %v", *scenarioName, err)
		}
		runner = scenario.NewRunner(sc, session.Signals().Set)
	}

	if err := session.Start(); err != nil {
		log.Fatalf("session: %v", err)
	}
	defer session.Stop()
	if runner != nil {
		runner.Start()
		defer runner.Stop()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("spriterig")

	game := NewGame(session, view, reload, *debug)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
