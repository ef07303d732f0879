package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerWalk(t *testing.T) {
	cases := []struct {
		name     string
		input    component.Input
		climbing bool
		want     float64
	}{
		{name: "left", input: component.Input{Left: true}, want: -220},
		{name: "right", input: component.Input{Right: true}, want: 220},
		{name: "both cancel", input: component.Input{Left: true, Right: true}, want: 0},
		{name: "nothing", want: 0},
		{name: "climbing ignores walking", input: component.Input{Left: true}, climbing: true, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testLevel())
			e, m := f.spawn(t, component.ClassPlayer, 600, 600)
			m.Velocity.X = 99
			m.Climbing = tc.climbing
			*ecs.MustGet(f.w, e, component.InputComponent.Kind()) = tc.input

			NewPlayerControlSystem(f.tuning, nil).Update(f.w, e, m)
			assert.Equal(t, tc.want, m.Velocity.X)
		})
	}
}

func TestPlayerJumpIsEdgeTriggered(t *testing.T) {
	f := newFixture(t, testLevel())
	cues := &recordingCues{}
	e, m := f.spawn(t, component.ClassPlayer, 600, 600)
	in := ecs.MustGet(f.w, e, component.InputComponent.Kind())
	ctl := NewPlayerControlSystem(f.tuning, cues)

	in.Jump = true
	ctl.Update(f.w, e, m)
	assert.Equal(t, -f.tuning.Player.JumpSpeed, m.Velocity.Y)
	assert.True(t, m.OffGround)

	m.OffGround = false
	m.Velocity.Y = 0
	ctl.Update(f.w, e, m)
	assert.Zero(t, m.Velocity.Y, "held jump does not repeat")

	in.Jump = false
	ctl.Update(f.w, e, m)
	in.Jump = true
	ctl.Update(f.w, e, m)
	assert.Equal(t, -f.tuning.Player.JumpSpeed, m.Velocity.Y)
	assert.Equal(t, 2, cues.count("jump"))
}

func TestPlayerNoAirJump(t *testing.T) {
	f := newFixture(t, testLevel())
	e, m := f.spawn(t, component.ClassPlayer, 600, 500)
	m.OffGround = true
	m.Velocity.Y = 50
	ecs.MustGet(f.w, e, component.InputComponent.Kind()).Jump = true

	NewPlayerControlSystem(f.tuning, nil).Update(f.w, e, m)
	assert.Equal(t, 50.0, m.Velocity.Y)
}

func TestPlayerFrozenWhileDying(t *testing.T) {
	f := newFixture(t, testLevel())
	e, m := f.spawn(t, component.ClassPlayer, 600, 600)
	require.NoError(t, ecs.Add(f.w, e, component.DeathTimerComponent.Kind(), &component.DeathTimer{TimerMs: 3000}))
	in := ecs.MustGet(f.w, e, component.InputComponent.Kind())
	in.Right, in.Jump = true, true

	NewPlayerControlSystem(f.tuning, nil).Update(f.w, e, m)
	assert.Zero(t, m.Velocity.X)
	assert.Zero(t, m.Velocity.Y)
}

func TestPlayerThrow(t *testing.T) {
	cases := []struct {
		name    string
		reflect bool
		wantVX  float64
	}{
		{name: "facing right", reflect: false, wantVX: 480},
		{name: "facing left", reflect: true, wantVX: -480},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testLevel())
			cues := &recordingCues{}
			player, m := f.spawn(t, component.ClassPlayer, 600, 600)
			m.ReflectX = tc.reflect
			bookE, bm := f.spawn(t, component.ClassBook, 600, 600)
			book := ecs.MustGet(f.w, bookE, component.BookComponent.Kind())
			book.Carried, book.Holder = true, uint64(player)
			ecs.MustGet(f.w, player, component.InputComponent.Kind()).Throw = true

			NewPlayerControlSystem(f.tuning, cues).Update(f.w, player, m)

			assert.False(t, book.Carried)
			assert.True(t, book.Thrown)
			assert.Equal(t, cp.Vector{X: tc.wantVX, Y: -f.tuning.Player.ThrowLift}, bm.Velocity)
			assert.Equal(t, m.Position, bm.Position)
			assert.True(t, bm.OffGround)
			assert.Equal(t, 1, cues.count("throw"))
		})
	}
}

func TestThrowWithoutBook(t *testing.T) {
	f := newFixture(t, testLevel())
	cues := &recordingCues{}
	player, m := f.spawn(t, component.ClassPlayer, 600, 600)
	bookE, _ := f.spawn(t, component.ClassBook, 900, 600)
	ecs.MustGet(f.w, player, component.InputComponent.Kind()).Throw = true

	NewPlayerControlSystem(f.tuning, cues).Update(f.w, player, m)
	assert.False(t, ecs.MustGet(f.w, bookE, component.BookComponent.Kind()).Thrown)
	assert.Zero(t, cues.count("throw"))
}

func TestFollowHolder(t *testing.T) {
	f := newFixture(t, testLevel())
	player, pm := f.spawn(t, component.ClassPlayer, 600, 600)
	bookE, bm := f.spawn(t, component.ClassBook, 100, 600)
	book := ecs.MustGet(f.w, bookE, component.BookComponent.Kind())
	book.Carried, book.Holder = true, uint64(player)
	bm.Velocity = cp.Vector{X: 5, Y: 5}

	FollowHolder(f.w, bookE, bm)
	assert.Equal(t, pm.Position, bm.Position)
	assert.Equal(t, cp.Vector{}, bm.Velocity)

	ecs.DestroyEntity(f.w, player)
	FollowHolder(f.w, bookE, bm)
	assert.False(t, book.Carried)
	assert.True(t, bm.OffGround)
}

func TestFollowTarget(t *testing.T) {
	f := newFixture(t, testLevel())
	player, pm := f.spawn(t, component.ClassPlayer, 600, 600)
	reticle, err := f.factory.NewReticle(f.w, player)
	require.NoError(t, err)
	rm := ecs.MustGet(f.w, reticle, component.MotionComponent.Kind())
	gap := f.tuning.Player.ReticleGap

	FollowTarget(f.w, reticle, rm)
	assert.Equal(t, pm.Position.Add(cp.Vector{X: gap}), rm.Position)

	pm.ReflectX = true
	FollowTarget(f.w, reticle, rm)
	assert.Equal(t, pm.Position.Add(cp.Vector{X: -gap}), rm.Position)
}
