package prefabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	data, err := LoadEmbedded("tuning.yaml")
	require.NoError(t, err)

	parsed, err := ParseTuning(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), parsed)
}

func TestParseTuningOverlay(t *testing.T) {
	tn, err := ParseTuning([]byte("zombie:\n  walk_speed: 99\nsizes:\n  zombie: [10, 20]\n"))
	require.NoError(t, err)

	assert.Equal(t, 99.0, tn.Zombie.WalkSpeed)
	assert.Equal(t, 10.0, tn.Zombie.LadderTolerance, "untouched fields keep defaults")
	w, h := tn.Size("zombie")
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 20.0, h)
	w, _ = tn.Size("player")
	assert.Equal(t, 40.0, w)
}

func TestParseTuningRejectsGarbage(t *testing.T) {
	_, err := ParseTuning([]byte("gravity: [1, 2"))
	assert.Error(t, err)
}

func TestMesh(t *testing.T) {
	spike, err := Mesh("spike")
	require.NoError(t, err)
	assert.Len(t, spike, 3)

	spike[0].X = 100
	again, err := Mesh("spike")
	require.NoError(t, err)
	assert.NotEqual(t, 100.0, again[0].X, "callers get a copy")

	_, err = Mesh("nope")
	assert.Error(t, err)
}
