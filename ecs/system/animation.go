package system

import (
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
)

// AnimationSystem picks the sprite mode of the player, doors, zombies and
// the boss, and fires a cue when it changes.
type AnimationSystem struct {
	state *GameState
	cues  Cues
}

func NewAnimationSystem(state *GameState, cues Cues) *AnimationSystem {
	if cues == nil {
		cues = NopCues{}
	}
	return &AnimationSystem{state: state, cues: cues}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.KindComponent.Kind(), func(e ecs.Entity, anim *component.Animation, k *component.Kind) {
		var mode component.AnimMode
		switch k.Class {
		case component.ClassPlayer:
			mode = s.player(w, e)
		case component.ClassDoor:
			mode = component.AnimClosed
			if d, ok := ecs.Get(w, e, component.DoorComponent.Kind()); ok && d.Open {
				mode = component.AnimOpen
			}
		case component.ClassZombie:
			mode = component.AnimIdle
			if ecs.Has(w, e, component.ZombieDeathTimerComponent.Kind()) {
				mode = component.AnimDead
			} else if ai, ok := ecs.Get(w, e, component.ZombieAIComponent.Kind()); ok && ai.Mode != "" {
				mode = ai.Mode
			}
		case component.ClassBoss:
			mode = s.boss(w, e)
		default:
			mode = s.moving(w, e)
		}
		if mode != anim.Mode {
			anim.Mode = mode
			s.cues.Animation(e, mode)
		}
	})
}

func (s *AnimationSystem) player(w *ecs.World, e ecs.Entity) component.AnimMode {
	if ecs.Has(w, e, component.DeathTimerComponent.Kind()) {
		return component.AnimDead
	}
	if ecs.Has(w, e, component.CutsceneTimerComponent.Kind()) || (s.state != nil && s.state.Complete) {
		return component.AnimWin
	}
	if ecs.Has(w, e, component.LostLifeTimerComponent.Kind()) {
		return component.AnimHit
	}
	m, ok := ecs.Get(w, e, component.MotionComponent.Kind())
	if !ok {
		return component.AnimIdle
	}
	switch {
	case m.Climbing:
		return component.AnimClimb
	case m.OffGround:
		return component.AnimJump
	case m.Velocity.X != 0:
		return component.AnimRun
	}
	return component.AnimIdle
}

func (s *AnimationSystem) boss(w *ecs.World, e ecs.Entity) component.AnimMode {
	b := ecs.MustGet(w, e, component.BossComponent.Kind())
	switch {
	case b.Dead:
		return component.AnimDead
	case ecs.Has(w, e, component.LostLifeTimerComponent.Kind()):
		return component.AnimHit
	case b.Phase == component.BossPhaseSummon:
		return component.AnimSummon
	}
	return s.moving(w, e)
}

func (s *AnimationSystem) moving(w *ecs.World, e ecs.Entity) component.AnimMode {
	if m, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok && m.Velocity.X != 0 {
		return component.AnimRun
	}
	return component.AnimIdle
}
