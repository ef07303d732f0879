package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/ecs/entity"
	"github.com/milk9111/outbreak/levels"
	"github.com/milk9111/outbreak/prefabs"
	"github.com/stretchr/testify/require"
)

const frameMs = 16.0

// testLevel has a ground tier at y=600 and an upper tier at y=300 joined by
// one ladder at x=100.
func testLevel() *levels.Level {
	return &levels.Level{
		Name:       "test",
		Kind:       levels.KindStandard,
		Width:      2000,
		Height:     1000,
		Floors:     []float64{600, 300},
		Ladders:    [][]float64{{100}, {}},
		JumpPoints: [][]float64{{}, {}},
		Player:     levels.Vec2{600, 268},
	}
}

type fixture struct {
	w       *ecs.World
	tuning  *prefabs.Tuning
	factory *entity.Factory
	state   *GameState
}

func newFixture(t *testing.T, lvl *levels.Level) *fixture {
	t.Helper()
	tuning := prefabs.DefaultTuning()
	return &fixture{
		w:       ecs.NewWorld(),
		tuning:  tuning,
		factory: entity.NewFactory(tuning),
		state:   NewGameState(lvl),
	}
}

// spawn creates a grounded entity of class with its feet on feetY.
func (f *fixture) spawn(t *testing.T, class component.Class, x, feetY float64) (ecs.Entity, *component.Motion) {
	t.Helper()
	_, h := f.tuning.Size(class.String())
	var (
		e   ecs.Entity
		err error
	)
	if class == component.ClassPlayer {
		e, err = f.factory.NewPlayer(f.w, cp.Vector{X: x, Y: feetY - h/2})
	} else {
		e, err = f.factory.Spawn(f.w, class, cp.Vector{X: x, Y: feetY - h/2})
	}
	require.NoError(t, err)
	m := ecs.MustGet(f.w, e, component.MotionComponent.Kind())
	m.OffGround = false
	m.Velocity = cp.Vector{}
	return e, m
}

func (f *fixture) platform(t *testing.T, x, y, w, h float64) ecs.Entity {
	t.Helper()
	e, err := f.factory.NewBlock(f.w, component.ClassPlatform, levels.Block{Type: "platform", X: x, Y: y, W: w, H: h})
	require.NoError(t, err)
	return e
}

func (f *fixture) block(t *testing.T, class component.Class, x, y, w, h float64) ecs.Entity {
	t.Helper()
	e, err := f.factory.NewBlock(f.w, class, levels.Block{Type: class.String(), X: x, Y: y, W: w, H: h})
	require.NoError(t, err)
	return e
}

func (f *fixture) worldUpdate(cues Cues) *WorldUpdateSystem {
	return NewWorldUpdateSystem(WorldUpdateConfig{
		Tuning:  f.tuning,
		State:   f.state,
		Spawner: f.factory,
		Cues:    cues,
	})
}

// recordingCues keeps every cue for assertions.
type recordingCues struct {
	sounds []string
	modes  map[ecs.Entity][]component.AnimMode
}

func (c *recordingCues) Sound(name string) {
	c.sounds = append(c.sounds, name)
}

func (c *recordingCues) Animation(e ecs.Entity, mode component.AnimMode) {
	if c.modes == nil {
		c.modes = map[ecs.Entity][]component.AnimMode{}
	}
	c.modes[e] = append(c.modes[e], mode)
}

func (c *recordingCues) count(name string) int {
	n := 0
	for _, s := range c.sounds {
		if s == name {
			n++
		}
	}
	return n
}

func hasPair(log *ecs.CollisionLog, a, b ecs.Entity) bool {
	for _, c := range log.Items() {
		if c.Self == a && c.Other == b {
			return true
		}
	}
	return false
}
