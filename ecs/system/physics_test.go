package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// raw creates a bare entity with a kind and a motion box.
func raw(t *testing.T, w *ecs.World, class component.Class, pos, size cp.Vector) (ecs.Entity, *component.Motion) {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.KindComponent.Kind(), &component.Kind{Class: class}))
	m := &component.Motion{Position: pos, Scale: size, SpeedMul: 1}
	require.NoError(t, ecs.Add(w, e, component.MotionComponent.Kind(), m))
	return e, m
}

func TestIntegrationDeterminism(t *testing.T) {
	cases := []struct {
		name string
		v    cp.Vector
		dt   float64
	}{
		{name: "right", v: cp.Vector{X: 100}, dt: 16},
		{name: "diagonal", v: cp.Vector{X: -35.5, Y: 72.25}, dt: 33},
		{name: "still", v: cp.Vector{}, dt: 16},
		{name: "long frame", v: cp.Vector{X: 10, Y: -10}, dt: 250},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			start := cp.Vector{X: 500, Y: 400}
			_, m := raw(t, w, component.ClassZombie, start, cp.Vector{X: 40, Y: 64})
			m.Velocity = tc.v

			NewPhysicsSystem(nil).Update(w, tc.dt)

			want := start.Add(tc.v.Mult(tc.dt / 1000))
			assert.InDelta(t, want.X, m.Position.X, 1e-9)
			assert.InDelta(t, want.Y, m.Position.Y, 1e-9)
		})
	}
}

func TestGravityGating(t *testing.T) {
	tuning := prefabs.DefaultTuning()
	g := tuning.Gravity
	cases := []struct {
		class component.Class
		g     float64
	}{
		{component.ClassPlayer, g.Human},
		{component.ClassStudent, g.Human},
		{component.ClassZombie, g.Zombie},
		{component.ClassBook, g.Weapon},
		{component.ClassWheel, g.Wheel},
		{component.ClassBoss, g.Boss},
		{component.ClassBus, g.Vehicle},
		{component.ClassSpike, 0},
		{component.ClassCollectible, 0},
	}
	for _, tc := range cases {
		t.Run(tc.class.String(), func(t *testing.T) {
			for _, state := range []struct {
				name      string
				offGround bool
				climbing  bool
				want      float64
			}{
				{name: "airborne", offGround: true, want: tc.g * frameMs / 1000},
				{name: "grounded", offGround: false, want: 0},
				{name: "climbing", offGround: true, climbing: true, want: 0},
			} {
				w := ecs.NewWorld()
				_, m := raw(t, w, tc.class, cp.Vector{X: 100, Y: 100}, cp.Vector{X: 10, Y: 10})
				m.OffGround = state.offGround
				m.Climbing = state.climbing

				NewPhysicsSystem(tuning).Update(w, frameMs)
				assert.InDelta(t, state.want, m.Velocity.Y, 1e-9, state.name)
			}
		})
	}
}

func TestPlayerFacing(t *testing.T) {
	w := ecs.NewWorld()
	_, player := raw(t, w, component.ClassPlayer, cp.Vector{}, cp.Vector{X: 40, Y: 64})
	_, zombie := raw(t, w, component.ClassZombie, cp.Vector{X: 1000}, cp.Vector{X: 40, Y: 64})
	p := NewPhysicsSystem(nil)

	player.Velocity.X = -10
	zombie.Velocity.X = -10
	p.Update(w, frameMs)
	assert.True(t, player.ReflectX)
	assert.False(t, zombie.ReflectX)

	player.Velocity.X = 0
	p.Update(w, frameMs)
	assert.True(t, player.ReflectX)

	player.Velocity.X = 5
	p.Update(w, frameMs)
	assert.False(t, player.ReflectX)
}

func TestBezierHazard(t *testing.T) {
	cases := []struct {
		name     string
		timeMs   float64
		wantPos  cp.Vector
		wantTime float64
	}{
		{name: "start", timeMs: 0, wantPos: cp.Vector{X: 0}, wantTime: 16},
		{name: "end of curve", timeMs: 1000, wantPos: cp.Vector{X: 200}, wantTime: 1016},
		{name: "past curve end", timeMs: 1500, wantPos: cp.Vector{X: 300}, wantTime: 1516},
		{name: "idle window", timeMs: 3000, wantPos: cp.Vector{X: 42, Y: 7}, wantTime: 3016},
		{name: "reset", timeMs: 4000, wantPos: cp.Vector{X: 0}, wantTime: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, m := raw(t, w, component.ClassCurveHazard, cp.Vector{X: 42, Y: 7}, cp.Vector{X: 32, Y: 32})
			bz := &component.Bezier{
				Points:    []cp.Vector{{X: 0}, {X: 100}, {X: 200}},
				Quadratic: true,
				TimeMs:    tc.timeMs,
			}
			require.NoError(t, ecs.Add(w, e, component.BezierComponent.Kind(), bz))

			NewPhysicsSystem(nil).Update(w, frameMs)
			assert.InDelta(t, tc.wantPos.X, m.Position.X, 1e-9)
			assert.InDelta(t, tc.wantPos.Y, m.Position.Y, 1e-9)
			assert.Equal(t, tc.wantTime, bz.TimeMs)
		})
	}
}

func TestFallingDrift(t *testing.T) {
	w := ecs.NewWorld()
	e, m := raw(t, w, component.ClassFallingHazard, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 24, Y: 24})
	require.NoError(t, ecs.Add(w, e, component.FallingComponent.Kind(), &component.Falling{Drift: 180}))

	NewPhysicsSystem(nil).Update(w, frameMs)
	assert.InDelta(t, 10+180*frameMs/1000, m.Position.Y, 1e-9)
}

func TestCollisionSymmetry(t *testing.T) {
	w := ecs.NewWorld()
	size := cp.Vector{X: 40, Y: 64}
	a, _ := raw(t, w, component.ClassZombie, cp.Vector{X: 100, Y: 100}, size)
	b, _ := raw(t, w, component.ClassStudent, cp.Vector{X: 110, Y: 100}, size)
	far, _ := raw(t, w, component.ClassZombie, cp.Vector{X: 900, Y: 100}, size)
	p1, _ := raw(t, w, component.ClassPlatform, cp.Vector{X: 100, Y: 100}, cp.Vector{X: 200, Y: 20})
	p2, _ := raw(t, w, component.ClassWall, cp.Vector{X: 105, Y: 100}, cp.Vector{X: 200, Y: 20})
	ret, _ := raw(t, w, component.ClassReticle, cp.Vector{X: 100, Y: 100}, cp.Vector{X: 16, Y: 16})

	NewPhysicsSystem(nil).Update(w, 0)
	log := w.Collisions()

	assert.True(t, hasPair(log, a, b))
	assert.True(t, hasPair(log, b, a))
	assert.False(t, hasPair(log, a, far))
	assert.False(t, hasPair(log, p1, p2), "static pairs are skipped")
	assert.False(t, hasPair(log, p2, p1))
	assert.True(t, hasPair(log, a, p1), "moving vs static is still tested")
	assert.True(t, hasPair(log, p1, a))
	for _, c := range log.Items() {
		assert.NotEqual(t, ret, c.Self)
		assert.NotEqual(t, ret, c.Other)
	}

	counts := map[ecs.Collision]int{}
	for _, c := range log.Items() {
		counts[c]++
	}
	for c, n := range counts {
		assert.Equal(t, n, counts[ecs.Collision{Self: c.Other, Other: c.Self}], "record %v has no mirror", c)
	}
}

func TestCollisionLogReplaced(t *testing.T) {
	w := ecs.NewWorld()
	w.Collisions().PushPair(1, 2)

	NewPhysicsSystem(nil).Update(w, frameMs)
	assert.Zero(t, w.Collisions().Len())
}

func TestPlayerSpikePrecise(t *testing.T) {
	cases := []struct {
		name   string
		player cp.Vector
		want   bool
	}{
		{name: "apex inside player box", player: cp.Vector{X: 0, Y: -40}, want: true},
		{name: "circle overlap but no vertex inside", player: cp.Vector{X: 0, Y: 20}, want: false},
		{name: "far away", player: cp.Vector{X: 300, Y: 0}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testLevel())
			spike, err := f.factory.NewSpike(f.w, cp.Vector{})
			require.NoError(t, err)
			player, err := f.factory.NewPlayer(f.w, tc.player)
			require.NoError(t, err)
			ecs.MustGet(f.w, player, component.MotionComponent.Kind()).OffGround = false

			NewPhysicsSystem(f.tuning).Update(f.w, 0)
			assert.Equal(t, tc.want, hasPair(f.w.Collisions(), player, spike))
			assert.Equal(t, tc.want, hasPair(f.w.Collisions(), spike, player))
		})
	}
}

func TestPlayerEnclosedBySpike(t *testing.T) {
	f := newFixture(t, testLevel())
	spike, err := f.factory.NewSpike(f.w, cp.Vector{})
	require.NoError(t, err)
	ecs.MustGet(f.w, spike, component.MeshComponent.Kind()).Vertices = []cp.Vector{{X: -4, Y: -4}, {X: 4, Y: -4}, {X: 4, Y: 4}, {X: -4, Y: 4}}
	player, m := f.spawn(t, component.ClassPlayer, 0, 32)
	m.Scale = cp.Vector{X: 10, Y: 10}
	m.Position = cp.Vector{}

	NewPhysicsSystem(f.tuning).Update(f.w, 0)
	assert.True(t, hasPair(f.w.Collisions(), player, spike))
}

func TestWheelBouncesOffSpike(t *testing.T) {
	f := newFixture(t, testLevel())
	spike, err := f.factory.NewSpike(f.w, cp.Vector{})
	require.NoError(t, err)
	wheel, err := f.factory.NewWheel(f.w, cp.Vector{X: 0, Y: -40}, 0)
	require.NoError(t, err)
	wm := ecs.MustGet(f.w, wheel, component.MotionComponent.Kind())
	wm.OffGround = false
	wm.Velocity = cp.Vector{X: 0, Y: 200}
	sm := ecs.MustGet(f.w, spike, component.MotionComponent.Kind())

	NewPhysicsSystem(f.tuning).Update(f.w, frameMs)

	assert.InDelta(t, -100, wm.Velocity.Y, 1e-6, "restitution 0.5 on an immovable spike")
	assert.Equal(t, cp.Vector{}, sm.Position)
	assert.Equal(t, cp.Vector{}, sm.Velocity)
	assert.False(t, hasPair(f.w.Collisions(), wheel, spike))
	assert.False(t, hasPair(f.w.Collisions(), spike, wheel))
}
