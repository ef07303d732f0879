package save

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Progress is what survives between runs: the level to resume at and the
// fastest completion of every level, in milliseconds.
type Progress struct {
	Level     int             `msgpack:"level"`
	BestTimes map[int]float64 `msgpack:"best_times"`
}

// Best returns the recorded best time for a level.
func (p *Progress) Best(level int) (float64, bool) {
	if p == nil || p.BestTimes == nil {
		return 0, false
	}
	ms, ok := p.BestTimes[level]
	return ms, ok
}

// Record stores elapsedMs when it beats the current best and moves the resume
// point past the completed level. It reports whether the time is a new best.
func (p *Progress) Record(level int, elapsedMs float64) bool {
	if p.BestTimes == nil {
		p.BestTimes = make(map[int]float64)
	}
	if level+1 > p.Level {
		p.Level = level + 1
	}
	if best, ok := p.BestTimes[level]; ok && best <= elapsedMs {
		return false
	}
	p.BestTimes[level] = elapsedMs
	return true
}

// Store reads and writes Progress as a msgpack file. An empty path disables
// persistence.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the saved progress. A missing file is a fresh start.
func (s *Store) Load() (*Progress, error) {
	p := &Progress{BestTimes: make(map[int]float64)}
	if s == nil || s.path == "" {
		return p, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("save: load: %w", err)
	}
	if err := msgpack.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("save: decode %s: %w", s.path, err)
	}
	if p.BestTimes == nil {
		p.BestTimes = make(map[int]float64)
	}
	return p, nil
}

// Save writes p next to the target and renames it into place.
func (s *Store) Save(p *Progress) error {
	if s == nil || s.path == "" || p == nil {
		return nil
	}
	data, err := msgpack.Marshal(p)
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
