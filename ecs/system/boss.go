package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// BossSystem runs the active boss: health bar tracking, death, hit-stun and
// the summon cycle.
type BossSystem struct {
	tuning  *prefabs.Tuning
	state   *GameState
	nav     *NavigationSystem
	spawner Spawner
	cues    Cues
	log     *zap.Logger
}

func NewBossSystem(tuning *prefabs.Tuning, state *GameState, nav *NavigationSystem, spawner Spawner, cues Cues, log *zap.Logger) *BossSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	if cues == nil {
		cues = NopCues{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BossSystem{tuning: tuning, state: state, nav: nav, spawner: spawner, cues: cues, log: log}
}

func (s *BossSystem) Update(w *ecs.World, dtMs float64) {
	if s == nil || w == nil || s.state == nil || !s.state.BossActive {
		return
	}

	var target *component.Motion
	if player, ok := findClass(w, component.ClassPlayer); ok {
		target, _ = ecs.Get(w, player, component.MotionComponent.Kind())
	}

	ecs.ForEach2(w, component.BossComponent.Kind(), component.MotionComponent.Kind(), func(e ecs.Entity, boss *component.Boss, m *component.Motion) {
		s.trackBar(w, e, boss, m)

		if boss.Dead {
			return
		}
		if boss.Health <= 0 {
			s.die(w, e, boss, m)
			return
		}

		if ecs.Has(w, e, component.LostLifeTimerComponent.Kind()) {
			m.Velocity.X = -boss.Direction * s.tuning.Boss.Knockback
			if err := ecs.Add(w, e, component.TintComponent.Kind(), &component.Tint{Color: colornames.Red}); err != nil {
				panic("boss system: add tint: " + err.Error())
			}
			return
		}

		s.summonCycle(w, e, boss, m, target, dtMs)
		s.nav.Boss(m, boss, target)
	})
}

// trackBar keeps health bars above their boss and scales them to the
// remaining health.
func (s *BossSystem) trackBar(w *ecs.World, boss ecs.Entity, b *component.Boss, m *component.Motion) {
	ecs.ForEach2(w, component.HealthBarComponent.Kind(), component.MotionComponent.Kind(), func(_ ecs.Entity, bar *component.HealthBar, bm *component.Motion) {
		if bar.Owner != uint64(boss) {
			return
		}
		bm.Position = m.Position.Sub(cp.Vector{X: 0, Y: bar.Offset})
		frac := 0.0
		if b.MaxHealth > 0 && b.Health > 0 {
			frac = float64(b.Health) / float64(b.MaxHealth)
		}
		bm.Scale.X = bar.Width * frac
	})
}

func (s *BossSystem) die(w *ecs.World, e ecs.Entity, boss *component.Boss, m *component.Motion) {
	boss.Dead = true
	m.Velocity = cp.Vector{}
	s.cues.Sound("boss_death")
	s.log.Info("boss defeated", zap.Stringer("entity", e))

	timer := func(target ecs.Entity) {
		if err := ecs.Add(w, target, component.ZombieDeathTimerComponent.Kind(), &component.ZombieDeathTimer{
			TimerMs:   s.tuning.Timers.ZombieDeathMs,
			Direction: boss.Direction,
		}); err != nil {
			panic("boss system: add death timer: " + err.Error())
		}
	}
	timer(e)
	ecs.ForEach(w, component.HealthBarComponent.Kind(), func(bar ecs.Entity, hb *component.HealthBar) {
		if hb.Owner == uint64(e) {
			timer(bar)
		}
	})
}

// summonCycle counts down to the summon phase, holds the phase and fires its
// effects once per entry.
func (s *BossSystem) summonCycle(w *ecs.World, e ecs.Entity, boss *component.Boss, m *component.Motion, target *component.Motion, dtMs float64) {
	bt := s.tuning.Boss
	switch boss.Phase {
	case component.BossPhaseMove:
		boss.SummonMs -= dtMs
		if boss.SummonMs > 0 {
			return
		}
		boss.SummonMs = bt.CooldownMs
		boss.Phase = component.BossPhaseSummon
		boss.PhaseMs = bt.SummonPhaseMs
		boss.Triggered = false
		m.Velocity.X = 0
		s.cues.Sound("summon")
	case component.BossPhaseSummon:
		m.Velocity.X = 0
		if !boss.Triggered {
			boss.Triggered = true
			s.dropHazards(w, target)
			s.reinforce(w, m)
		}
		boss.PhaseMs -= dtMs
		if boss.PhaseMs <= 0 {
			boss.Phase = component.BossPhaseMove
		}
	}
}

// dropHazards spreads falling hazards across the top of the camera view, or
// around the target when there is no camera.
func (s *BossSystem) dropHazards(w *ecs.World, target *component.Motion) {
	if s.spawner == nil {
		return
	}
	n := s.tuning.Boss.Hazards
	if n <= 0 {
		return
	}

	var left, width, top float64
	if camE, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		cam := ecs.MustGet(w, camE, component.CameraComponent.Kind())
		left, width, top = cam.Left, cam.Width(), cam.Top
	} else if target != nil {
		width = s.tuning.Camera.Width
		left = target.Position.X - width/2
		top = target.Position.Y - s.tuning.Camera.Height/2
	} else {
		return
	}

	for i := 0; i < n; i++ {
		pos := cp.Vector{X: left + (float64(i)+0.5)*width/float64(n), Y: top}
		if _, err := s.spawner.Spawn(w, component.ClassFallingHazard, pos); err != nil {
			s.log.Warn("spawn falling hazard", zap.Error(err))
			return
		}
	}
}

func (s *BossSystem) reinforce(w *ecs.World, m *component.Motion) {
	if s.spawner == nil {
		return
	}
	if countClass(w, component.ClassZombie, true) >= s.tuning.Boss.ReinforcementCap {
		return
	}
	if _, err := s.spawner.Spawn(w, component.ClassZombie, m.Position); err != nil {
		s.log.Warn("spawn reinforcement", zap.Error(err))
	}
}
