package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWinCondition(t *testing.T) {
	cases := []struct {
		name      string
		required  int
		collected int
		zombies   int
		gameOver  bool
		want      bool
	}{
		{name: "cleared", required: 2, collected: 2, want: true},
		{name: "extra collectibles", required: 1, collected: 3, want: true},
		{name: "missing collectibles", required: 2, collected: 1, want: false},
		{name: "zombie left", required: 0, zombies: 1, want: false},
		{name: "player dying", required: 0, gameOver: true, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl := testLevel()
			lvl.Index = 3
			lvl.Required = tc.required
			f := newFixture(t, lvl)
			f.state.GameOver = tc.gameOver
			f.state.ElapsedMs = 1234
			cues := &recordingCues{}
			player, _ := f.spawn(t, component.ClassPlayer, 600, 600)
			ecs.MustGet(f.w, player, component.PlayerComponent.Kind()).Collected = tc.collected
			for i := range tc.zombies {
				f.spawn(t, component.ClassZombie, 100+float64(i)*50, 600)
			}
			door, err := f.factory.NewDoor(f.w, cp.Vector{X: 900, Y: 552})
			require.NoError(t, err)

			var gotIndex int
			var gotElapsed float64
			calls := 0
			win := NewWinSystem(f.state, cues, zaptest.NewLogger(t))
			win.OnComplete = func(index int, elapsed float64) {
				calls++
				gotIndex, gotElapsed = index, elapsed
			}
			win.Update(f.w)
			win.Update(f.w)

			assert.Equal(t, tc.want, f.state.Complete)
			assert.Equal(t, tc.want, ecs.MustGet(f.w, door, component.DoorComponent.Kind()).Open)
			if tc.want {
				assert.Equal(t, 1, calls)
				assert.Equal(t, 3, gotIndex)
				assert.Equal(t, 1234.0, gotElapsed)
				assert.Equal(t, 1, cues.count("win"))
			} else {
				assert.Zero(t, calls)
			}
		})
	}
}

func TestWinBossGate(t *testing.T) {
	lvl := testLevel()
	lvl.Kind = levels.KindLab
	lvl.Boss = &levels.BossSpec{Variant: "ground", X: 1500, Y: 536}
	f := newFixture(t, lvl)
	cues := &recordingCues{}
	f.spawn(t, component.ClassPlayer, 600, 600)
	blockade := f.block(t, component.ClassBlockade, 1000, 300, 40, 300)
	boss, _, err := f.factory.NewBoss(f.w, cp.Vector{X: 1500, Y: 536}, component.BossGround, 1)
	require.NoError(t, err)
	win := NewWinSystem(f.state, cues, nil)

	win.Update(f.w)
	assert.True(t, f.state.BossActive)
	assert.False(t, f.state.Complete)
	assert.False(t, ecs.IsAlive(f.w, blockade))
	assert.Equal(t, 1, cues.count("boss"))

	win.Update(f.w)
	assert.False(t, f.state.Complete, "boss still alive")

	ecs.DestroyEntity(f.w, boss)
	win.Update(f.w)
	assert.True(t, f.state.Complete)
	assert.Equal(t, 1, cues.count("boss"))
}
