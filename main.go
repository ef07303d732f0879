package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/outbreak/ecs/system"
	"github.com/milk9111/outbreak/levels"
	"github.com/milk9111/outbreak/prefabs"
	"github.com/milk9111/outbreak/save"
	"github.com/milk9111/outbreak/sim"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	fullView := flag.Bool("fullview", false, "allow spawns inside the camera view")
	watch := flag.Bool("watch", false, "reload level and script files when they change on disk")
	savePath := flag.String("save", "outbreak.sav", "progress file (empty disables saving)")
	levelName := flag.String("level", "", "level file in levels/ (basename, .yaml optional)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		logger.Fatal("load tuning", zap.Error(err))
	}

	all, err := levels.LoadAll(context.Background())
	if err != nil {
		logger.Fatal("load levels", zap.Error(err))
	}

	start := -1
	if *levelName != "" {
		lvl, err := levels.Load(*levelName)
		if err != nil {
			logger.Fatal("load start level", zap.String("level", *levelName), zap.Error(err))
		}
		start = lvl.Index
	}

	s, err := sim.New(sim.Config{
		Tuning:   tuning,
		Levels:   levels.Set(all),
		Start:    start,
		FullView: *fullView,
		Debug:    *debug,
		Store:    save.NewStore(*savePath),
		Cues:     system.LogCues{Log: logger.Named("cues")},
		Log:      logger.Named("sim"),
	})
	if err != nil {
		logger.Fatal("start simulation", zap.Error(err))
	}

	var watcher *levels.Watcher
	if *watch {
		watcher, err = levels.NewWatcher(logger.Named("watch"), levels.Dir, levels.Dir+"/scripts")
		if err != nil {
			logger.Warn("level watcher disabled", zap.Error(err))
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(tuning.Camera.Width), int(tuning.Camera.Height))
	ebiten.SetWindowTitle("outbreak")

	game := NewGame(s, watcher, tuning, logger.Named("game"), *debug)
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal("game loop", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
