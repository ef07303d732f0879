package system

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/milk9111/outbreak/common"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/levels"
	"go.uber.org/zap"
)

// SpawnSystem runs the zombie and student spawn timers.
type SpawnSystem struct {
	state   *GameState
	spawner Spawner
	log     *zap.Logger
	rng     *rand.Rand

	zombieMs  float64
	studentMs float64
}

func NewSpawnSystem(state *GameState, spawner Spawner, log *zap.Logger) *SpawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	seed := uint64(0)
	if state != nil && state.Level != nil {
		seed = xxhash.Sum64String(state.Level.Name)
	}
	return &SpawnSystem{
		state:   state,
		spawner: spawner,
		log:     log,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *SpawnSystem) Update(w *ecs.World, dtMs float64) {
	if s == nil || w == nil || s.state == nil || s.state.Level == nil || s.spawner == nil {
		return
	}
	lvl := s.state.Level
	s.zombieMs += dtMs
	s.studentMs += dtMs

	if s.tick(w, &s.zombieMs, lvl.ZombieSpawns, component.ClassZombie) {
		s.log.Debug("spawned", zap.String("class", "zombie"))
	}
	if s.tick(w, &s.studentMs, lvl.StudentSpawns, component.ClassStudent) {
		s.log.Debug("spawned", zap.String("class", "student"))
	}
}

// tick spawns one entity once the timer passes the pool interval and the
// population is below the cap. The timer resets only on success.
func (s *SpawnSystem) tick(w *ecs.World, timer *float64, pool levels.SpawnPool, class component.Class) bool {
	if pool.IntervalMs <= 0 || len(pool.Points) == 0 || *timer < pool.IntervalMs {
		return false
	}
	if countClass(w, class, true) >= pool.Cap {
		return false
	}

	pos, ok := s.pick(w, pool)
	if !ok {
		return false
	}
	if _, err := s.spawner.Spawn(w, class, pos.Vector()); err != nil {
		s.log.Warn("spawn failed", zap.Stringer("class", class), zap.Error(err))
		return false
	}
	*timer = 0
	return true
}

// pick draws up to len(points) random candidates looking for one outside the
// camera view. FullView accepts the first draw.
func (s *SpawnSystem) pick(w *ecs.World, pool levels.SpawnPool) (levels.Vec2, bool) {
	camE, hasCam := ecs.First(w, component.CameraComponent.Kind())
	for range len(pool.Points) {
		p := pool.Points[s.rng.IntN(len(pool.Points))]
		if s.state.FullView || !hasCam {
			return p, true
		}
		cam := ecs.MustGet(w, camE, component.CameraComponent.Kind())
		if !common.BoxContainsPoint(cam.View(), p.Vector()) {
			return p, true
		}
	}
	return levels.Vec2{}, false
}
