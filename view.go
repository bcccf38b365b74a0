package main

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/spriterig/anim"
)

// SpriteView is the rendered surface the pipeline commits clip changes to. It
// wraps an anim.Animation and implements pipeline.ViewBinding. ApplyAnimation
// arrives from the session's commit goroutine while Update/Draw run on the
// game loop, so every member goes through the mutex.
type SpriteView struct {
	mu   sync.Mutex
	anim *anim.Animation
	x, y float64
	flip bool
}

func NewSpriteView(sheet *ebiten.Image, frameW, frameH int) *SpriteView {
	return &SpriteView{anim: anim.NewAnimation(sheet, frameW, frameH)}
}

// ApplyAnimation switches the view to a new clip. Called by the commit
// scheduler exactly once per state change.
func (v *SpriteView) ApplyAnimation(row, frameCount int, fps float64, playing, loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.anim.Play(row, frameCount, fps, playing, loop)
}

// SetPosition places the sprite in screen space. Called by the stage each
// frame.
func (v *SpriteView) SetPosition(x, y float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.x, v.y = x, y
}

// SetFlipped mirrors the sprite horizontally when the character faces left.
func (v *SpriteView) SetFlipped(flip bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flip = flip
}

// Update advances the active clip. Call once per game update.
func (v *SpriteView) Update() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.anim.Update()
}

// Draw renders the current frame at the sprite's stage position, scaled up so
// the 32px frames are legible.
func (v *SpriteView) Draw(screen *ebiten.Image, scale float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fw, fh := v.anim.Size()
	op := &ebiten.DrawImageOptions{}
	if v.flip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(fw), 0)
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(v.x-float64(fw)*scale/2, v.y-float64(fh)*scale)
	v.anim.Draw(screen, op)
}
