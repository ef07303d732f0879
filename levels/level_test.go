package levels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllOrdered(t *testing.T) {
	all, err := LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, len(Names()))

	for i, lvl := range all {
		assert.Equal(t, i, lvl.Index, lvl.Name)
		assert.Len(t, lvl.Ladders, len(lvl.Floors), lvl.Name)
		assert.Len(t, lvl.JumpPoints, len(lvl.Floors), lvl.Name)
	}

	set := Set(all)
	next, ok := set.Next(0)
	require.True(t, ok)
	assert.Equal(t, 1, next.Index)
	_, ok = set.Next(len(all) - 1)
	assert.False(t, ok)
}

func TestLoadKinds(t *testing.T) {
	cases := []struct {
		name    string
		kind    Kind
		hasBoss bool
	}{
		{name: "00_campus", kind: KindStandard},
		{name: "01_bus.yaml", kind: KindBus},
		{name: "02_sewer", kind: KindSewer},
		{name: "03_lab", kind: KindLab, hasBoss: true},
		{name: "04_nest", kind: KindArena, hasBoss: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Load(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, lvl.Kind)
			assert.Equal(t, tc.hasBoss, lvl.HasBoss())
		})
	}
}

const validLevel = `
name: t
width: 1000
height: 600
floors: [560, 300]
ladders: [[100], []]
jump_points: [[], []]
player: [50, 500]
`

func TestValidate(t *testing.T) {
	base, err := Parse([]byte(validLevel))
	require.NoError(t, err)
	assert.Equal(t, KindStandard, base.Kind)

	cases := []struct {
		name   string
		mutate func(l *Level)
	}{
		{name: "ladders out of sync", mutate: func(l *Level) { l.Ladders = l.Ladders[:1] }},
		{name: "jump points out of sync", mutate: func(l *Level) { l.JumpPoints = append(l.JumpPoints, nil) }},
		{name: "floors not rising", mutate: func(l *Level) { l.Floors = []float64{300, 560} }},
		{name: "no floors", mutate: func(l *Level) { l.Floors, l.Ladders, l.JumpPoints = nil, nil, nil }},
		{name: "zero size", mutate: func(l *Level) { l.Width = 0 }},
		{name: "unknown kind", mutate: func(l *Level) { l.Kind = "moon" }},
		{name: "unknown block", mutate: func(l *Level) { l.Blocks = []Block{{Type: "lava", W: 1, H: 1}} }},
		{name: "unknown entity", mutate: func(l *Level) { l.Entities = []Entity{{Type: "dragon"}} }},
		{name: "short curve", mutate: func(l *Level) { l.Entities = []Entity{{Type: "curve_hazard", Points: []Vec2{{0, 0}}}} }},
		{name: "spawn outside", mutate: func(l *Level) { l.ZombieSpawns.Points = []Vec2{{-5, 10}} }},
		{name: "player outside", mutate: func(l *Level) { l.Player = Vec2{50, 900} }},
		{name: "bad boss", mutate: func(l *Level) { l.Boss = &BossSpec{Variant: "sky"} }},
		{name: "empty bus range", mutate: func(l *Level) { l.Bus = &BusSpec{MinX: 10, MaxX: 10} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Parse([]byte(validLevel))
			require.NoError(t, err)
			tc.mutate(lvl)
			assert.ErrorIs(t, lvl.Validate(), ErrInvalidLevel)
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("floors: {"))
	require.Error(t, err)
}

func TestTier(t *testing.T) {
	lvl := &Level{Floors: []float64{1040, 680, 320}}
	cases := []struct {
		feet float64
		want int
	}{
		{feet: 1040, want: 0},
		{feet: 1000, want: 0},
		{feet: 680, want: 1},
		{feet: 500, want: 1},
		{feet: 320, want: 2},
		{feet: 10, want: 2},
		{feet: 1100, want: 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, lvl.Tier(tc.feet), "feet %v", tc.feet)
	}
}

func TestTableAccessors(t *testing.T) {
	lvl := &Level{
		Floors:     []float64{600, 300},
		Ladders:    [][]float64{{100, 500}, {}},
		JumpPoints: [][]float64{{}, {250}},
	}
	assert.Equal(t, []float64{100, 500}, lvl.LaddersFrom(0))
	assert.Nil(t, lvl.LaddersFrom(-1))
	assert.Nil(t, lvl.LaddersFrom(2))
	assert.Equal(t, []float64{250}, lvl.JumpsOn(1))
	assert.Equal(t, 600.0, lvl.Floor(-3))
	assert.Equal(t, 300.0, lvl.Floor(9))

	x, ok := NearestLadder(lvl.LaddersFrom(0), 380)
	require.True(t, ok)
	assert.Equal(t, 500.0, x)
	_, ok = NearestLadder(nil, 10)
	assert.False(t, ok)
}

func TestLoadScript(t *testing.T) {
	src, err := LoadScript("bus.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "update")

	_, err = LoadScript("missing.tengo")
	require.Error(t, err)
}
