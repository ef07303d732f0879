package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/levels"
	"go.uber.org/zap"
)

// Outcome tells the driver what to do after a world update.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeRestart rebuilds the current level.
	OutcomeRestart
	// OutcomeAdvance moves on to the next level.
	OutcomeAdvance
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRestart:
		return "restart"
	case OutcomeAdvance:
		return "advance"
	}
	return "none"
}

// Spawner creates a populated entity of class at pos.
type Spawner interface {
	Spawn(w *ecs.World, class component.Class, pos cp.Vector) (ecs.Entity, error)
}

// DebugBoxer creates single-frame collision markers.
type DebugBoxer interface {
	NewDebugBox(w *ecs.World, bb cp.BB) (ecs.Entity, error)
}

// Cues receives fire-and-forget sound and animation notifications.
type Cues interface {
	Sound(name string)
	Animation(e ecs.Entity, mode component.AnimMode)
}

type NopCues struct{}

func (NopCues) Sound(string) {}
func (NopCues) Animation(ecs.Entity, component.AnimMode) {}

// LogCues writes every cue to a logger at debug level.
type LogCues struct {
	Log *zap.Logger
}

func (c LogCues) Sound(name string) {
	if c.Log != nil {
		c.Log.Debug("sound", zap.String("name", name))
	}
}

func (c LogCues) Animation(e ecs.Entity, mode component.AnimMode) {
	if c.Log != nil {
		c.Log.Debug("animation", zap.Stringer("entity", e), zap.String("mode", string(mode)))
	}
}

// GameState is the per-level state shared by the world update subsystems.
type GameState struct {
	Level     *levels.Level
	ElapsedMs float64
	// FullView lets spawns appear inside the camera view.
	FullView bool
	// Complete is set once the win condition holds; the door opens.
	Complete bool
	// BossActive is set when a boss level's gate has been passed.
	BossActive bool
	// GameOver is set while the player is dying.
	GameOver bool
	// DebugBoxes marks every colliding entity with a debug box each frame.
	DebugBoxes bool
	// Darkness is the screen darkening factor in [0,1] for the renderer.
	Darkness float64
}

// NewGameState returns the state for a freshly built level.
func NewGameState(lvl *levels.Level) *GameState {
	return &GameState{Level: lvl}
}

func classOf(w *ecs.World, e ecs.Entity) component.Class {
	if k, ok := ecs.Get(w, e, component.KindComponent.Kind()); ok {
		return k.Class
	}
	return component.ClassNone
}

func countClass(w *ecs.World, class component.Class, skipDying bool) int {
	n := 0
	ecs.ForEach(w, component.KindComponent.Kind(), func(e ecs.Entity, k *component.Kind) {
		if k.Class != class {
			return
		}
		if skipDying && ecs.Has(w, e, component.ZombieDeathTimerComponent.Kind()) {
			return
		}
		n++
	})
	return n
}

func findClass(w *ecs.World, class component.Class) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.KindComponent.Kind(), func(e ecs.Entity, k *component.Kind) {
		if !ok && k.Class == class {
			found, ok = e, true
		}
	})
	return found, ok
}

func entityFromID(w *ecs.World, id uint64) (ecs.Entity, bool) {
	e := ecs.Entity(id)
	return e, id != 0 && ecs.IsAlive(w, e)
}
