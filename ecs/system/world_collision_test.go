package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) resolve(e ecs.Entity, m *component.Motion) {
	NewWorldCollisionSystem(f.tuning, f.state).Resolve(f.w, e, classOf(f.w, e), m, collectBlocks(f.w), frameMs)
}

func TestLanding(t *testing.T) {
	cases := []struct {
		name     string
		feet     float64
		vy       float64
		grounded bool
		wantFeet float64
	}{
		{name: "inside land band", feet: 605, vy: 100, grounded: true, wantFeet: 600},
		{name: "resting on top", feet: 600, vy: 0, grounded: true, wantFeet: 600},
		{name: "just above", feet: 599.6, vy: 20, grounded: true, wantFeet: 600},
		{name: "moving up", feet: 605, vy: -100, grounded: false, wantFeet: 605},
		{name: "too deep", feet: 620, vy: 100, grounded: false, wantFeet: 620},
		{name: "in the air", feet: 500, vy: 100, grounded: false, wantFeet: 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testLevel())
			f.platform(t, 0, 600, 2000, 40)
			e, m := f.spawn(t, component.ClassZombie, 500, tc.feet)
			m.OffGround = true
			m.Velocity.Y = tc.vy

			f.resolve(e, m)

			assert.Equal(t, !tc.grounded, m.OffGround)
			assert.InDelta(t, tc.wantFeet, m.Feet(), 1e-9)
			if tc.grounded {
				assert.Zero(t, m.Velocity.Y)
			}
		})
	}
}

func TestHeadBump(t *testing.T) {
	f := newFixture(t, testLevel())
	f.platform(t, 0, 300, 2000, 20)
	e, m := f.spawn(t, component.ClassPlayer, 500, 382)
	m.OffGround = true
	m.Velocity.Y = -400

	f.resolve(e, m)

	assert.Zero(t, m.Velocity.Y)
	assert.InDelta(t, 320, m.Box().B, 1e-9)
	assert.True(t, m.OffGround)
}

func TestSideHit(t *testing.T) {
	cases := []struct {
		name  string
		class component.Class
		wall  component.Class
		x     float64
		vx    float64
		check func(t *testing.T, f *fixture, e ecs.Entity, m *component.Motion)
	}{
		{
			name: "player stops", class: component.ClassPlayer, wall: component.ClassWall, x: 585, vx: 220,
			check: func(t *testing.T, _ *fixture, _ ecs.Entity, m *component.Motion) {
				assert.Zero(t, m.Velocity.X)
				assert.InDelta(t, 600, m.Box().R, 1e-9)
			},
		},
		{
			name: "zombie flags its right side", class: component.ClassZombie, wall: component.ClassWall, x: 585, vx: 70,
			check: func(t *testing.T, f *fixture, e ecs.Entity, m *component.Motion) {
				ai := ecs.MustGet(f.w, e, component.ZombieAIComponent.Kind())
				assert.True(t, ai.BlockedRight)
				assert.False(t, ai.BlockedLeft)
				assert.Equal(t, 70.0, m.Velocity.X)
			},
		},
		{
			name: "zombie flags its left side", class: component.ClassZombie, wall: component.ClassWall, x: 655, vx: -70,
			check: func(t *testing.T, f *fixture, e ecs.Entity, m *component.Motion) {
				ai := ecs.MustGet(f.w, e, component.ZombieAIComponent.Kind())
				assert.True(t, ai.BlockedLeft)
				assert.InDelta(t, 640, m.Box().L, 1e-9)
			},
		},
		{
			name: "student turns at a wall", class: component.ClassStudent, wall: component.ClassWall, x: 587, vx: 60,
			check: func(t *testing.T, _ *fixture, _ ecs.Entity, m *component.Motion) {
				assert.Equal(t, -60.0, m.Velocity.X)
			},
		},
		{
			name: "student hops a platform edge", class: component.ClassStudent, wall: component.ClassPlatform, x: 587, vx: 60,
			check: func(t *testing.T, f *fixture, _ ecs.Entity, m *component.Motion) {
				assert.Equal(t, -f.tuning.Student.HopSpeed, m.Velocity.Y)
				assert.Equal(t, 60.0, m.Velocity.X)
			},
		},
		{
			name: "book drops", class: component.ClassBook, wall: component.ClassWall, x: 595, vx: 480,
			check: func(t *testing.T, _ *fixture, _ ecs.Entity, m *component.Motion) {
				assert.Zero(t, m.Velocity.X)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testLevel())
			f.platform(t, 0, 600, 2000, 40)
			f.block(t, tc.wall, 600, 400, 40, 200)
			e, m := f.spawn(t, tc.class, tc.x, 600)
			m.Velocity.X = tc.vx

			f.resolve(e, m)
			tc.check(t, f, e, m)
		})
	}
}

func TestBossTurnsAtWall(t *testing.T) {
	f := newFixture(t, testLevel())
	f.platform(t, 0, 600, 2000, 40)
	f.block(t, component.ClassBlockade, 600, 300, 40, 300)
	boss, _, err := f.factory.NewBoss(f.w, cp.Vector{X: 560, Y: 536}, component.BossGround, 3)
	require.NoError(t, err)
	m := ecs.MustGet(f.w, boss, component.MotionComponent.Kind())
	m.OffGround = false
	m.Velocity.X = 90

	f.resolve(boss, m)

	assert.Equal(t, -90.0, m.Velocity.X)
	assert.Equal(t, -1.0, ecs.MustGet(f.w, boss, component.BossComponent.Kind()).Direction)
}

func TestLevelBounds(t *testing.T) {
	cases := []struct {
		name   string
		class  component.Class
		x      float64
		vx     float64
		wantX  float64
		wantVX float64
	}{
		{name: "player left edge", class: component.ClassPlayer, x: 10, vx: -220, wantX: 20, wantVX: 0},
		{name: "player right edge", class: component.ClassPlayer, x: 1995, vx: 220, wantX: 1980, wantVX: 0},
		{name: "zombie left edge", class: component.ClassZombie, x: 5, vx: -70, wantX: 20, wantVX: 70},
		{name: "wheel right edge", class: component.ClassWheel, x: 1990, vx: 120, wantX: 1976, wantVX: -120},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testLevel())
			f.platform(t, 0, 600, 2000, 40)
			e, m := f.spawn(t, tc.class, tc.x, 600)
			m.Velocity.X = tc.vx

			f.resolve(e, m)

			assert.InDelta(t, tc.wantX, m.Position.X, 1e-9)
			assert.Equal(t, tc.wantVX, m.Velocity.X)
		})
	}
}

func TestLevelFloorCatchesFallers(t *testing.T) {
	f := newFixture(t, testLevel())
	e, m := f.spawn(t, component.ClassZombie, 500, 1030)
	m.OffGround = true
	m.Velocity.Y = 300

	f.resolve(e, m)

	assert.InDelta(t, 1000, m.Feet(), 1e-9)
	assert.Zero(t, m.Velocity.Y)
	assert.False(t, m.OffGround)
}

func TestLedgeNudge(t *testing.T) {
	cases := []struct {
		name   string
		class  component.Class
		nudged bool
	}{
		{name: "student", class: component.ClassStudent, nudged: true},
		{name: "wheel", class: component.ClassWheel, nudged: true},
		{name: "zombie falls", class: component.ClassZombie, nudged: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testLevel())
			f.platform(t, 0, 600, 500, 40)
			e, m := f.spawn(t, tc.class, 540, 600)
			m.Velocity.X = 60

			f.resolve(e, m)

			if tc.nudged {
				assert.Equal(t, 538.0, m.Position.X)
				assert.Equal(t, -60.0, m.Velocity.X)
				assert.False(t, m.OffGround)
			} else {
				assert.Equal(t, 540.0, m.Position.X)
				assert.True(t, m.OffGround)
			}
		})
	}
}

func TestLocalityFilter(t *testing.T) {
	f := newFixture(t, testLevel())
	f.platform(t, 1200, 600, 200, 40)
	e, m := f.spawn(t, component.ClassZombie, 500, 605)
	m.OffGround = true
	m.Velocity.Y = 100

	f.resolve(e, m)
	assert.True(t, m.OffGround)
}

func TestThrownBookLands(t *testing.T) {
	f := newFixture(t, testLevel())
	f.platform(t, 0, 600, 2000, 40)
	e, m := f.spawn(t, component.ClassBook, 500, 604)
	book := ecs.MustGet(f.w, e, component.BookComponent.Kind())
	book.Thrown = true
	m.OffGround = true
	m.Velocity = cp.Vector{X: 480, Y: 200}
	m.Angle = 1.2

	f.resolve(e, m)

	assert.False(t, book.Thrown)
	assert.Zero(t, m.Velocity.X)
	assert.Zero(t, m.Angle)
	assert.False(t, m.OffGround)
}

func TestPlayerLadder(t *testing.T) {
	cases := []struct {
		name      string
		feet      float64
		x         float64
		climbing  bool
		input     component.Input
		wantClimb bool
		wantVY    float64
		wantX     float64
	}{
		{name: "up starts a climb", feet: 600, x: 104, input: component.Input{Up: true}, wantClimb: true, wantVY: -160, wantX: 100},
		{name: "down at the bottom does nothing", feet: 600, x: 100, input: component.Input{Down: true}, wantClimb: false, wantVY: 0, wantX: 100},
		{name: "down from the top", feet: 300, x: 100, input: component.Input{Down: true}, wantClimb: true, wantVY: 160, wantX: 100},
		{name: "holding on the ladder", feet: 450, x: 100, climbing: true, wantClimb: true, wantVY: 0, wantX: 100},
		{name: "up at the top finishes", feet: 300, x: 100, climbing: true, input: component.Input{Up: true}, wantClimb: false, wantVY: 0, wantX: 100},
		{name: "outside the column", feet: 600, x: 200, input: component.Input{Up: true}, wantClimb: false, wantVY: 0, wantX: 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testLevel())
			f.platform(t, 0, 600, 2000, 40)
			f.platform(t, 0, 300, 1000, 20)
			f.block(t, component.ClassLadder, 90, 300, 20, 300)
			e, m := f.spawn(t, component.ClassPlayer, tc.x, tc.feet)
			m.Climbing = tc.climbing
			*ecs.MustGet(f.w, e, component.InputComponent.Kind()) = tc.input

			f.resolve(e, m)

			assert.Equal(t, tc.wantClimb, m.Climbing)
			assert.Equal(t, tc.wantVY, m.Velocity.Y)
			assert.Equal(t, tc.wantX, m.Position.X)
			if tc.wantClimb {
				assert.False(t, m.OffGround)
			}
		})
	}
}
