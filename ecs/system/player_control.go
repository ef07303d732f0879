package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
)

// PlayerControlSystem turns the sampled input into player motion and moves
// the carried book and the reticle along with the player.
type PlayerControlSystem struct {
	tuning *prefabs.Tuning
	cues   Cues

	lastJump  bool
	lastThrow bool
}

func NewPlayerControlSystem(tuning *prefabs.Tuning, cues Cues) *PlayerControlSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	if cues == nil {
		cues = NopCues{}
	}
	return &PlayerControlSystem{tuning: tuning, cues: cues}
}

func (s *PlayerControlSystem) Update(w *ecs.World, e ecs.Entity, m *component.Motion) {
	if s == nil || w == nil || m == nil {
		return
	}
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	jump := in.Jump && !s.lastJump
	throw := in.Throw && !s.lastThrow
	s.lastJump, s.lastThrow = in.Jump, in.Throw

	if ecs.Has(w, e, component.DeathTimerComponent.Kind()) || ecs.Has(w, e, component.CutsceneTimerComponent.Kind()) {
		m.Velocity.X = 0
		return
	}

	pt := s.tuning.Player
	if m.Climbing {
		m.Velocity.X = 0
	} else {
		vx := 0.0
		if in.Left {
			vx -= pt.WalkSpeed
		}
		if in.Right {
			vx += pt.WalkSpeed
		}
		m.Velocity.X = vx
	}

	if jump && !m.OffGround && !m.Climbing {
		m.Velocity.Y = -pt.JumpSpeed
		m.OffGround = true
		s.cues.Sound("jump")
	}
	if throw {
		s.throw(w, e, m)
	}
}

func (s *PlayerControlSystem) throw(w *ecs.World, player ecs.Entity, m *component.Motion) {
	pt := s.tuning.Player
	ecs.ForEach2(w, component.BookComponent.Kind(), component.MotionComponent.Kind(), func(_ ecs.Entity, b *component.Book, bm *component.Motion) {
		if !b.Carried || b.Holder != uint64(player) {
			return
		}
		b.Carried = false
		b.Thrown = true
		bm.Position = m.Position
		bm.Velocity = cp.Vector{X: m.Facing() * pt.ThrowSpeed, Y: -pt.ThrowLift}
		bm.OffGround = true
		s.cues.Sound("throw")
	})
}

// FollowHolder snaps a carried book onto its holder with zero velocity.
func FollowHolder(w *ecs.World, e ecs.Entity, m *component.Motion) {
	b, ok := ecs.Get(w, e, component.BookComponent.Kind())
	if !ok || !b.Carried {
		return
	}
	holder, ok := entityFromID(w, b.Holder)
	if !ok {
		b.Carried = false
		m.OffGround = true
		return
	}
	hm, ok := ecs.Get(w, holder, component.MotionComponent.Kind())
	if !ok {
		return
	}
	m.Position = hm.Position
	m.Velocity = cp.Vector{}
	m.OffGround = false
}

// FollowTarget keeps a follower at its offset in front of the target.
func FollowTarget(w *ecs.World, e ecs.Entity, m *component.Motion) {
	f, ok := ecs.Get(w, e, component.FollowerComponent.Kind())
	if !ok {
		return
	}
	target, ok := entityFromID(w, f.Target)
	if !ok {
		return
	}
	tm, ok := ecs.Get(w, target, component.MotionComponent.Kind())
	if !ok {
		return
	}
	m.Position = tm.Position.Add(cp.Vector{X: tm.Facing() * f.OffsetX, Y: f.OffsetY})
	m.Velocity = cp.Vector{}
}
