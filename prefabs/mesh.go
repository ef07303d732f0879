package prefabs

import (
	"fmt"
	"sync"

	"github.com/jakecoffman/cp"
)

type meshFile struct {
	Meshes map[string][]Vec2 `yaml:"meshes"`
}

var (
	meshOnce  sync.Once
	meshCache map[string][]cp.Vector
	meshErr   error
)

// Mesh returns the unit-space polygon registered under name.
func Mesh(name string) ([]cp.Vector, error) {
	meshOnce.Do(func() {
		var spec meshFile
		spec, meshErr = LoadSpec[meshFile]("meshes.yaml")
		if meshErr != nil {
			return
		}
		meshCache = make(map[string][]cp.Vector, len(spec.Meshes))
		for k, pts := range spec.Meshes {
			verts := make([]cp.Vector, len(pts))
			for i, p := range pts {
				verts[i] = cp.Vector{X: p[0], Y: p[1]}
			}
			meshCache[k] = verts
		}
	})
	if meshErr != nil {
		return nil, meshErr
	}
	verts, ok := meshCache[name]
	if !ok {
		return nil, fmt.Errorf("prefabs: unknown mesh %q", name)
	}
	out := make([]cp.Vector, len(verts))
	copy(out, verts)
	return out, nil
}
