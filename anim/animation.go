package anim

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Animation plays one horizontal row of a sprite sheet at a time. Frames are
// laid out left-to-right within a row; switching clips re-slices the sheet
// starting at the requested row.
type Animation struct {
	sheet  *ebiten.Image
	frameW int
	frameH int
	cols   int

	row        int
	frameCount int
	fps        float64
	loop       bool
	playing    bool

	current     int
	tick        int
	ticksPerFrm int
	frames      []*ebiten.Image
}

// NewAnimation creates an Animation over the full sprite sheet. `frameW` and
// `frameH` are the per-frame pixel size. The animation starts with no clip
// selected; call Play to pick one.
func NewAnimation(sheet *ebiten.Image, frameW, frameH int) *Animation {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return &Animation{}
	}
	return &Animation{
		sheet:  sheet,
		frameW: frameW,
		frameH: frameH,
		cols:   sheet.Bounds().Dx() / frameW,
	}
}

// Play switches the animation to the clip starting at the given row (0-based)
// reading `frameCount` frames left-to-right. If the requested frames exceed
// the row length they continue onto subsequent rows. Calling Play always
// restarts the clip from its first frame.
func (a *Animation) Play(row, frameCount int, fps float64, playing, loop bool) {
	if a == nil || a.sheet == nil {
		return
	}
	if row < 0 {
		row = 0
	}
	if fps <= 0 {
		fps = 12
	}
	maxFrames := a.cols * (a.sheet.Bounds().Dy() / a.frameH)
	if frameCount <= 0 || frameCount > maxFrames {
		frameCount = maxFrames
	}

	a.row = row
	a.frameCount = frameCount
	a.fps = fps
	a.loop = loop
	a.playing = playing
	a.ticksPerFrm = int(math.Max(1, math.Round(60.0/fps)))
	a.current = 0
	a.tick = 0
	a.buildFrames()
}

// buildFrames slices the sheet into per-frame *ebiten.Image subimages for the
// active clip.
func (a *Animation) buildFrames() {
	if a == nil || a.sheet == nil || a.frameCount <= 0 {
		return
	}
	start := a.row * a.cols
	a.frames = make([]*ebiten.Image, a.frameCount)
	for i := 0; i < a.frameCount; i++ {
		idx := start + i
		col := idx % a.cols
		row := idx / a.cols
		sx := col * a.frameW
		sy := row * a.frameH
		r := image.Rect(sx, sy, sx+a.frameW, sy+a.frameH)
		a.frames[i] = a.sheet.SubImage(r).(*ebiten.Image)
	}
}

// Update advances the clip according to its FPS. Call once per game update
// (typically 60 times per second).
func (a *Animation) Update() {
	if a == nil || a.sheet == nil || !a.playing || a.frameCount <= 1 {
		return
	}
	a.tick++
	if a.tick >= a.ticksPerFrm {
		a.tick = 0
		a.current++
		if a.current >= a.frameCount {
			if a.loop {
				a.current = 0
			} else {
				a.current = a.frameCount - 1
				a.playing = false
			}
		}
	}
}

// Draw draws the current frame at the position described by `op`. If no clip
// has been selected yet nothing is drawn.
func (a *Animation) Draw(screen *ebiten.Image, op *ebiten.DrawImageOptions) {
	if a == nil || a.sheet == nil || a.frameCount == 0 || len(a.frames) == 0 {
		return
	}
	fi := a.current
	if fi < 0 || fi >= len(a.frames) {
		fi = 0
	}
	var dop ebiten.DrawImageOptions
	if op != nil {
		dop = *op
	}
	dop.Filter = ebiten.FilterNearest
	screen.DrawImage(a.frames[fi], &dop)
}

// Size returns the frame width/height.
func (a *Animation) Size() (int, int) { return a.frameW, a.frameH }
