package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

const (
	stageGravity   = 900.0
	workerSpeed    = 120.0
	workerMass     = 1.0
	floorY         = 560.0
	stageLeftWall  = 160.0
	stageRightWall = 1120.0
	floorThickness = 8.0
)

// Stage is the little world the worker paces around in: a Chipmunk space with
// a floor and two walls, plus one dynamic body for the worker. It is purely
// visual scenery around the pipeline; it reads the moving signal and never
// writes any.
type Stage struct {
	space *cp.Space
	body  *cp.Body

	facingLeft bool
}

func NewStage() *Stage {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: stageGravity})

	addWall := func(a, b cp.Vector) {
		seg := cp.NewSegment(space.StaticBody, a, b, floorThickness/2)
		seg.SetFriction(0)
		seg.SetElasticity(0)
		space.AddShape(seg)
	}
	addWall(cp.Vector{X: stageLeftWall, Y: 0}, cp.Vector{X: stageLeftWall, Y: floorY})
	addWall(cp.Vector{X: stageRightWall, Y: 0}, cp.Vector{X: stageRightWall, Y: floorY})
	addWall(cp.Vector{X: 0, Y: floorY}, cp.Vector{X: baseWidth, Y: floorY})

	half := float64(spriteScale) * 16
	body := space.AddBody(cp.NewBody(workerMass, cp.INFINITY))
	body.SetPosition(cp.Vector{X: baseWidth / 2, Y: floorY - half})
	shape := space.AddShape(cp.NewBox(body, half, half*2, 0))
	shape.SetFriction(0)
	shape.SetElasticity(0)

	return &Stage{space: space, body: body}
}

// Step advances the physics world one frame. While `moving` is asserted the
// worker walks toward the wall it faces and turns around on contact; otherwise
// it stands still.
func (st *Stage) Step(moving bool, dt float64) {
	vx := 0.0
	if moving {
		x := st.body.Position().X
		margin := float64(spriteScale) * 16
		if st.facingLeft && x <= stageLeftWall+margin {
			st.facingLeft = false
		} else if !st.facingLeft && x >= stageRightWall-margin {
			st.facingLeft = true
		}
		vx = workerSpeed
		if st.facingLeft {
			vx = -workerSpeed
		}
	}
	v := st.body.Velocity()
	st.body.SetVelocity(vx, v.Y)
	st.space.Step(dt)
}

// WorkerPosition returns the worker's feet position in screen space.
func (st *Stage) WorkerPosition() (float64, float64) {
	p := st.body.Position()
	return p.X, p.Y + float64(spriteScale)*16
}

// FacingLeft reports which way the worker walks; the view mirrors the sprite
// to match.
func (st *Stage) FacingLeft() bool { return st.facingLeft }

// Draw renders the floor and walls as flat rectangles.
func (st *Stage) Draw(screen *ebiten.Image) {
	ground := colornames.Darkslategray
	vector.FillRect(screen, 0, float32(floorY), baseWidth, baseHeight-float32(floorY), ground, false)
	wall := color.NRGBA{R: 0x55, G: 0x5f, B: 0x66, A: 0xff}
	vector.FillRect(screen, float32(stageLeftWall)-floorThickness, 0, floorThickness, float32(floorY), wall, false)
	vector.FillRect(screen, float32(stageRightWall), 0, floorThickness, float32(floorY), wall, false)
}
