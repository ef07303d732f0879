package system

import (
	"github.com/milk9111/outbreak/common"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
	"go.uber.org/zap"
)

// WorldUpdateSystem runs the per-frame game logic after physics, in a fixed
// order: win check, housekeeping and spawns, collision handling, boss,
// per-entity pass, animation modes, level script.
type WorldUpdateSystem struct {
	State *GameState

	Win       *WinSystem
	Spawn     *SpawnSystem
	Combat    *CombatSystem
	Boss      *BossSystem
	Control   *PlayerControlSystem
	Collision *WorldCollisionSystem
	Nav       *NavigationSystem
	Timers    *TimerSystem
	Animation *AnimationSystem
	Script    *LevelScriptSystem

	boxer DebugBoxer
	log   *zap.Logger
}

// WorldUpdateConfig carries the collaborators of a world update.
type WorldUpdateConfig struct {
	Tuning  *prefabs.Tuning
	State   *GameState
	Spawner Spawner
	Cues    Cues
	Log     *zap.Logger
}

func NewWorldUpdateSystem(cfg WorldUpdateConfig) *WorldUpdateSystem {
	if cfg.Tuning == nil {
		cfg.Tuning = prefabs.DefaultTuning()
	}
	if cfg.Cues == nil {
		cfg.Cues = NopCues{}
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.State == nil {
		cfg.State = &GameState{}
	}
	nav := NewNavigationSystem(cfg.Tuning, cfg.State)
	boxer, _ := cfg.Spawner.(DebugBoxer)
	return &WorldUpdateSystem{
		State:     cfg.State,
		Win:       NewWinSystem(cfg.State, cfg.Cues, cfg.Log.Named("win")),
		Spawn:     NewSpawnSystem(cfg.State, cfg.Spawner, cfg.Log.Named("spawn")),
		Combat:    NewCombatSystem(cfg.Tuning, cfg.State, cfg.Cues, cfg.Log.Named("combat")),
		Boss:      NewBossSystem(cfg.Tuning, cfg.State, nav, cfg.Spawner, cfg.Cues, cfg.Log.Named("boss")),
		Control:   NewPlayerControlSystem(cfg.Tuning, cfg.Cues),
		Collision: NewWorldCollisionSystem(cfg.Tuning, cfg.State),
		Nav:       nav,
		Timers:    NewTimerSystem(cfg.Tuning, cfg.State, cfg.Spawner, cfg.Cues, cfg.Log.Named("timers")),
		Animation: NewAnimationSystem(cfg.State, cfg.Cues),
		Script:    NewLevelScriptSystem(cfg.State, cfg.Log.Named("script")),
		boxer:     boxer,
		log:       cfg.Log,
	}
}

func (s *WorldUpdateSystem) Update(w *ecs.World, dtMs float64) Outcome {
	if s == nil || w == nil {
		return OutcomeNone
	}

	s.Win.Update(w)

	for _, e := range w.Query(component.DebugComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
	s.State.ElapsedMs += dtMs
	s.Spawn.Update(w, dtMs)
	if s.State.DebugBoxes {
		s.markCollisions(w)
	}

	s.Combat.Update(w)
	s.Boss.Update(w, dtMs)

	if out := s.perEntity(w, dtMs); out != OutcomeNone {
		return out
	}

	s.Animation.Update(w)
	s.Script.Update(w)
	return OutcomeNone
}

// perEntity walks Motion entities newest first. Entities destroyed during the
// walk are skipped; entities created during it wait for the next frame.
func (s *WorldUpdateSystem) perEntity(w *ecs.World, dtMs float64) Outcome {
	blocks := collectBlocks(w)

	var target *component.Motion
	if player, ok := findClass(w, component.ClassPlayer); ok {
		target, _ = ecs.Get(w, player, component.MotionComponent.Kind())
	}

	outcome := OutcomeNone
	ecs.ForEachReverse(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		if outcome != OutcomeNone || !ecs.IsAlive(w, e) {
			return
		}
		class := classOf(w, e)

		switch class {
		case component.ClassPlayer:
			s.Control.Update(w, e, m)
			s.Collision.Resolve(w, e, class, m, blocks, dtMs)
		case component.ClassZombie:
			s.Collision.Resolve(w, e, class, m, blocks, dtMs)
			if ecs.Has(w, e, component.ZombieDeathTimerComponent.Kind()) {
				break
			}
			if ai, ok := ecs.Get(w, e, component.ZombieAIComponent.Kind()); ok {
				s.Nav.Zombie(m, ai, target)
			}
		case component.ClassBook:
			if b, ok := ecs.Get(w, e, component.BookComponent.Kind()); ok && b.Carried {
				FollowHolder(w, e, m)
				break
			}
			s.Collision.Resolve(w, e, class, m, blocks, dtMs)
		case component.ClassReticle:
			FollowTarget(w, e, m)
		case component.ClassFallingHazard:
			if s.hitsSolid(m, blocks) || m.Position.Y > s.levelHeight() {
				ecs.DestroyEntity(w, e)
				return
			}
		case component.ClassStudent, component.ClassWheel, component.ClassBoss, component.ClassBus:
			s.Collision.Resolve(w, e, class, m, blocks, dtMs)
		}

		if out := s.Timers.Update(w, e, dtMs); out != OutcomeNone {
			s.log.Debug("world update interrupted", zap.Stringer("outcome", out))
			outcome = out
		}
	})
	return outcome
}

// markCollisions boxes every entity named in this frame's collision log. The
// boxes are purged at the start of the next update.
func (s *WorldUpdateSystem) markCollisions(w *ecs.World) {
	if s.boxer == nil {
		return
	}
	seen := map[ecs.Entity]bool{}
	for _, c := range w.Collisions().Items() {
		if seen[c.Self] {
			continue
		}
		seen[c.Self] = true
		m, ok := ecs.Get(w, c.Self, component.MotionComponent.Kind())
		if !ok {
			continue
		}
		if _, err := s.boxer.NewDebugBox(w, m.Box()); err != nil {
			s.log.Warn("debug box", zap.Stringer("entity", c.Self), zap.Error(err))
		}
	}
}

func (s *WorldUpdateSystem) hitsSolid(m *component.Motion, blocks []block) bool {
	box := m.Box()
	for _, b := range blocks {
		if !b.class.IsSolid() {
			continue
		}
		gx, gy := common.BoxGap(box, b.box)
		if gx < 0 && gy < 0 {
			return true
		}
	}
	return false
}

func (s *WorldUpdateSystem) levelHeight() float64 {
	if s.State == nil || s.State.Level == nil {
		return 1e9
	}
	return s.State.Level.Height
}
