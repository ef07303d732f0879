package system

import (
	"math"

	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
	"go.uber.org/zap"
)

// TimerSystem counts down the per-entity timers and performs their terminal
// actions. Only one dying timer drives an entity at a time: death, then
// zombie death, then infection, then cutscene.
type TimerSystem struct {
	tuning  *prefabs.Tuning
	state   *GameState
	spawner Spawner
	cues    Cues
	log     *zap.Logger
}

func NewTimerSystem(tuning *prefabs.Tuning, state *GameState, spawner Spawner, cues Cues, log *zap.Logger) *TimerSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	if cues == nil {
		cues = NopCues{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TimerSystem{tuning: tuning, state: state, spawner: spawner, cues: cues, log: log}
}

// Update advances every timer on e. A non-None outcome ends the world update.
func (s *TimerSystem) Update(w *ecs.World, e ecs.Entity, dtMs float64) Outcome {
	if s == nil || w == nil {
		return OutcomeNone
	}

	if t, ok := ecs.Get(w, e, component.DeathTimerComponent.Kind()); ok {
		return s.death(w, e, t, dtMs)
	}
	if t, ok := ecs.Get(w, e, component.ZombieDeathTimerComponent.Kind()); ok {
		s.zombieDeath(w, e, t, dtMs)
		return OutcomeNone
	}
	if t, ok := ecs.Get(w, e, component.InfectionTimerComponent.Kind()); ok {
		s.infection(w, e, t, dtMs)
		return OutcomeNone
	}
	if t, ok := ecs.Get(w, e, component.CutsceneTimerComponent.Kind()); ok {
		return s.cutscene(w, e, t, dtMs)
	}
	if t, ok := ecs.Get(w, e, component.LostLifeTimerComponent.Kind()); ok {
		s.lostLife(w, e, t, dtMs)
	}
	if t, ok := ecs.Get(w, e, component.FadingTimerComponent.Kind()); ok {
		s.fading(w, e, t, dtMs)
	}
	return OutcomeNone
}

// death tilts the player and darkens the screen in proportion to the elapsed
// share of the timer, then requests a restart.
func (s *TimerSystem) death(w *ecs.World, e ecs.Entity, t *component.DeathTimer, dtMs float64) Outcome {
	t.TimerMs -= dtMs
	if t.TimerMs <= 0 {
		ecs.Remove(w, e, component.DeathTimerComponent.Kind())
		s.log.Info("player died, restarting level")
		return OutcomeRestart
	}

	progress := 1 - t.TimerMs/s.tuning.Timers.DeathMs
	progress = math.Max(0, math.Min(1, progress))
	if m, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
		m.Angle = t.Direction * progress * math.Pi / 2
		m.Velocity.X = 0
	}
	if s.state != nil {
		s.state.Darkness = progress
	}
	return OutcomeNone
}

func (s *TimerSystem) zombieDeath(w *ecs.World, e ecs.Entity, t *component.ZombieDeathTimer, dtMs float64) {
	t.TimerMs -= dtMs
	if t.TimerMs <= 0 {
		ecs.DestroyEntity(w, e)
		return
	}
	if m, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
		progress := 1 - t.TimerMs/s.tuning.Timers.ZombieDeathMs
		m.Angle = t.Direction * math.Max(0, progress) * math.Pi / 2
		m.Velocity.X = 0
	}
}

// infection replaces the student with a zombie at the same spot.
func (s *TimerSystem) infection(w *ecs.World, e ecs.Entity, t *component.InfectionTimer, dtMs float64) {
	t.TimerMs -= dtMs
	if m, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
		m.Velocity.X = 0
	}
	if t.TimerMs > 0 {
		return
	}

	m, ok := ecs.Get(w, e, component.MotionComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return
	}
	// Keep the feet on the same floor.
	pos := m.Position
	_, zh := s.tuning.Size(component.ClassZombie.String())
	pos.Y += m.Size().Y/2 - zh/2
	ecs.DestroyEntity(w, e)
	if s.spawner == nil {
		return
	}
	if _, err := s.spawner.Spawn(w, component.ClassZombie, pos); err != nil {
		s.log.Warn("infection spawn", zap.Error(err))
		return
	}
	s.cues.Sound("infect")
}

func (s *TimerSystem) cutscene(w *ecs.World, e ecs.Entity, t *component.CutsceneTimer, dtMs float64) Outcome {
	t.TimerMs -= dtMs
	if t.TimerMs > 0 {
		return OutcomeNone
	}
	ecs.DestroyEntity(w, e)
	return OutcomeAdvance
}

func (s *TimerSystem) lostLife(w *ecs.World, e ecs.Entity, t *component.LostLifeTimer, dtMs float64) {
	t.TimerMs -= dtMs
	if t.TimerMs > 0 {
		return
	}
	ecs.Remove(w, e, component.LostLifeTimerComponent.Kind())
	ecs.Remove(w, e, component.TintComponent.Kind())
}

func (s *TimerSystem) fading(w *ecs.World, e ecs.Entity, t *component.FadingTimer, dtMs float64) {
	t.TimerMs -= dtMs
	if t.TimerMs <= 0 {
		ecs.DestroyEntity(w, e)
		return
	}
	if t.TotalMs > 0 {
		t.Factor = t.TimerMs / t.TotalMs
	}
	if o, ok := ecs.Get(w, e, component.OverlayComponent.Kind()); ok {
		o.Opacity = t.Factor
	}
}
