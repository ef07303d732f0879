package system

import (
	"math"

	"github.com/milk9111/outbreak/common"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
)

// CameraSystem frames the player. The view leads the player by a facing
// bias; facing changes and large vertical moves ease in over ShiftMs.
type CameraSystem struct {
	tuning *prefabs.Tuning
	state  *GameState
}

func NewCameraSystem(tuning *prefabs.Tuning, state *GameState) *CameraSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	return &CameraSystem{tuning: tuning, state: state}
}

func (cs *CameraSystem) Update(w *ecs.World, dtMs float64) {
	cam, target, ok := cs.find(w)
	if !ok {
		return
	}
	ct := cs.tuning.Camera
	width, height := cam.Width(), cam.Height()
	facing := target.Facing()

	wantLeft := target.Position.X - width/2 + facing*cam.Bias
	if !cam.ShiftingX && facing != cam.Facing {
		cam.ShiftingX = true
		cam.TimerX = 0
		cam.FromX = cam.Left
		cam.Facing = facing
	}
	cam.ToX = wantLeft
	left := wantLeft
	if cam.ShiftingX {
		cam.TimerX += dtMs
		k := 1.0
		if ct.ShiftMs > 0 {
			k = math.Min(1, cam.TimerX/ct.ShiftMs)
		}
		left = common.Lerp(cam.FromX, cam.ToX, common.SmoothStep(k))
		if k >= 1 {
			cam.ShiftingX = false
		}
	}

	wantTop := target.Position.Y - height/2
	top := cam.Top
	if !cam.ShiftingY && math.Abs(wantTop-cam.Top) > height*ct.VerticalMargin {
		cam.ShiftingY = true
		cam.TimerY = 0
		cam.FromY = cam.Top
	}
	if cam.ShiftingY {
		cam.ToY = wantTop
		cam.TimerY += dtMs
		k := 1.0
		if ct.ShiftMs > 0 {
			k = math.Min(1, cam.TimerY/ct.ShiftMs)
		}
		top = common.Lerp(cam.FromY, cam.ToY, common.SmoothStep(k))
		if k >= 1 {
			cam.ShiftingY = false
		}
	}

	cs.place(cam, left, top)
}

// Snap centres the view on the player without easing. Used when a level is
// (re)built.
func (cs *CameraSystem) Snap(w *ecs.World) {
	cam, target, ok := cs.find(w)
	if !ok {
		return
	}
	cam.ShiftingX, cam.ShiftingY = false, false
	cam.Facing = target.Facing()
	left := target.Position.X - cam.Width()/2 + cam.Facing*cam.Bias
	top := target.Position.Y - cam.Height()/2
	cs.place(cam, left, top)
}

func (cs *CameraSystem) find(w *ecs.World) (*component.Camera, *component.Motion, bool) {
	if cs == nil || w == nil {
		return nil, nil, false
	}
	camE, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	player, ok := findClass(w, component.ClassPlayer)
	if !ok {
		return nil, nil, false
	}
	target, ok := ecs.Get(w, player, component.MotionComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	return ecs.MustGet(w, camE, component.CameraComponent.Kind()), target, true
}

// place moves the view keeping its size, clamped to the level.
func (cs *CameraSystem) place(cam *component.Camera, left, top float64) {
	width, height := cam.Width(), cam.Height()
	if cs.state != nil && cs.state.Level != nil {
		lvl := cs.state.Level
		left = common.Clamp(left, 0, math.Max(0, lvl.Width-width))
		top = common.Clamp(top, 0, math.Max(0, lvl.Height-height))
	}
	cam.Left, cam.Top = left, top
	cam.Right, cam.Bottom = left+width, top+height
}
