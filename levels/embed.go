package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Dir is the on-disk override directory, relative to the working directory.
const Dir = "levels"

// ReadFile returns a level file, preferring the copy on disk.
func ReadFile(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(LevelsFS, clean)
}

// LoadScript returns a level script by file name.
func LoadScript(name string) ([]byte, error) {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	s = strings.TrimPrefix(s, "scripts/")
	if data, err := os.ReadFile(filepath.Join(Dir, "scripts", filepath.FromSlash(s))); err == nil {
		return data, nil
	}
	data, err := fs.ReadFile(ScriptsFS, "scripts/"+s)
	if err != nil {
		return nil, fmt.Errorf("levels: read script %s: %w", name, err)
	}
	return data, nil
}

// Names lists the embedded level files in play order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isLevelFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func isLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
