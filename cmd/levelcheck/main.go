// Command levelcheck validates every level file and runs each one headless
// for a fixed number of frames with no input.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/system"
	"github.com/milk9111/outbreak/levels"
	"github.com/milk9111/outbreak/prefabs"
	"github.com/milk9111/outbreak/sim"
	"go.uber.org/zap"
)

func main() {
	frames := flag.Int("frames", 600, "frames to simulate per level (0 only validates)")
	dt := flag.Float64("dt", 1000.0/60, "frame length in milliseconds")
	verbose := flag.Bool("v", false, "log simulation events")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Fatalf("tuning: %v", err)
	}
	all, err := levels.LoadAll(context.Background())
	if err != nil {
		log.Fatalf("levels: %v", err)
	}

	failed := false
	for _, lvl := range all {
		if err := run(levels.Set(all), lvl, tuning, logger, *frames, *dt); err != nil {
			fmt.Printf("FAIL %-8s %v\n", lvl.Name, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func run(set levels.Set, lvl *levels.Level, tuning *prefabs.Tuning, logger *zap.Logger, frames int, dt float64) error {
	s, err := sim.New(sim.Config{
		Tuning: tuning,
		Levels: set,
		Start:  lvl.Index,
		Log:    logger.Named(lvl.Name),
	})
	if err != nil {
		return err
	}

	counts := map[system.Outcome]int{}
	for i := range frames {
		out, err := s.Step(dt)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		counts[out]++
		if s.Finished() || s.Level().Index != lvl.Index {
			break
		}
	}
	fmt.Printf("ok   %-8s kind=%-8s entities=%-4d restarts=%d advances=%d\n",
		lvl.Name, lvl.Kind, len(ecs.Entities(s.World)), counts[system.OutcomeRestart], counts[system.OutcomeAdvance])
	return nil
}
