package levels

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Load reads and validates one level by file name ("00_campus" or
// "00_campus.yaml").
func Load(name string) (*Level, error) {
	data, err := ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return lvl, nil
}

// LoadAll preloads every embedded level concurrently and returns them ordered
// by Index. Any invalid level fails the whole set.
func LoadAll(ctx context.Context) ([]*Level, error) {
	names := Names()
	out := make([]*Level, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lvl, err := Load(name)
			if err != nil {
				return err
			}
			out[i] = lvl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	for i := 1; i < len(out); i++ {
		if out[i].Index == out[i-1].Index {
			return nil, fmt.Errorf("%w: %q and %q share index %d", ErrInvalidLevel, out[i-1].Name, out[i].Name, out[i].Index)
		}
	}
	return out, nil
}

// Set is an ordered level list with index lookup.
type Set []*Level

// ByIndex returns the level with the given index.
func (s Set) ByIndex(index int) (*Level, bool) {
	for _, l := range s {
		if l.Index == index {
			return l, true
		}
	}
	return nil, false
}

// Next returns the level after index, if any.
func (s Set) Next(index int) (*Level, bool) {
	for _, l := range s {
		if l.Index > index {
			return l, true
		}
	}
	return nil, false
}
