package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/spriterig/clips"
	"github.com/milk9111/spriterig/pipeline"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	spriteScale = 4
)

type Game struct {
	frames int

	session *pipeline.Session
	view    *SpriteView
	stage   *Stage
	ui      *ebitenui.UI

	reload <-chan string
	debug  bool
}

func NewGame(session *pipeline.Session, view *SpriteView, reload <-chan string, debug bool) *Game {
	return &Game{
		session: session,
		view:    view,
		stage:   NewStage(),
		ui:      NewSignalUI(session.Signals()),
		reload:  reload,
		debug:   debug,
	}
}

func (g *Game) Update() error {
	g.frames++

	g.handleKeys()
	g.handleReload()
	g.ui.Update()

	moving, _ := g.session.Signals().Get(pipeline.SignalMoving)
	g.stage.Step(moving, 1.0/60.0)

	x, y := g.stage.WorkerPosition()
	g.view.SetPosition(x, y)
	g.view.SetFlipped(g.stage.FacingLeft())
	g.view.Update()

	return nil
}

// handleKeys flips signals from the keyboard. The key handlers are plain
// external producers, same as the UI buttons and scenario scripts.
func (g *Game) handleKeys() {
	toggle := func(name pipeline.Signal) {
		cur, _ := g.session.Signals().Get(name)
		if err := g.session.Signals().Set(name, !cur); err != nil {
			log.Printf("toggle %s: %v", name, err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		toggle(pipeline.SignalMoving)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		toggle(pipeline.SignalWorking)
	}
}

// handleReload drains pending clip file change events and swaps the session's
// table. A bad edit keeps the old table and logs the parse error.
func (g *Game) handleReload() {
	for {
		select {
		case path, ok := <-g.reload:
			if !ok {
				g.reload = nil
				return
			}
			data, err := clips.Load(path)
			if err != nil {
				log.Printf("reload %s: %v", path, err)
				continue
			}
			table, err := clips.Parse(data)
			if err != nil {
				log.Printf("reload %s: %v", path, err)
				continue
			}
			if err := g.session.SetTable(table); err != nil {
				log.Printf("reload %s: %v", path, err)
				continue
			}
			log.Printf("reloaded clip table from %s", path)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
	g.view.Draw(screen, spriteScale)
	g.ui.Draw(screen)

	if g.debug {
		sn := g.session.Signals().Snapshot()
		applied, ok := g.session.Applied()
		appliedStr := "none"
		if ok {
			appliedStr = applied.String()
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.2f\nmoving: %v  working: %v\ndesired: %s  applied: %s",
			ebiten.ActualFPS(), sn.Moving, sn.Working, g.session.Desired(), appliedStr))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
