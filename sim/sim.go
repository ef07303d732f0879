package sim

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/ecs/entity"
	"github.com/milk9111/outbreak/ecs/system"
	"github.com/milk9111/outbreak/levels"
	"github.com/milk9111/outbreak/prefabs"
	"github.com/milk9111/outbreak/save"
	"go.uber.org/zap"
)

var ErrNoLevels = errors.New("sim: no levels")

var (
	_ system.Spawner    = (*entity.Factory)(nil)
	_ system.DebugBoxer = (*entity.Factory)(nil)
)

// Config wires a Simulation. Zero values fall back to defaults.
type Config struct {
	Tuning *prefabs.Tuning
	Levels levels.Set
	// Start is the level index to begin at; a negative value resumes from
	// the saved progress.
	Start    int
	FullView bool
	Debug    bool
	Store    *save.Store
	Cues     system.Cues
	Log      *zap.Logger
}

// Simulation owns the world of the current level and steps it one frame at a
// time: physics, then the world update, then the camera. Restart and advance
// outcomes rebuild the world before the next frame.
type Simulation struct {
	tuning   *prefabs.Tuning
	levels   levels.Set
	fullView bool
	debug    bool
	store    *save.Store
	cues     system.Cues
	log      *zap.Logger
	factory  *entity.Factory
	progress *save.Progress

	World  *ecs.World
	State  *system.GameState
	Player ecs.Entity

	physics *system.PhysicsSystem
	update  *system.WorldUpdateSystem
	camera  *system.CameraSystem

	finished bool
}

func New(cfg Config) (*Simulation, error) {
	if len(cfg.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if cfg.Tuning == nil {
		cfg.Tuning = prefabs.DefaultTuning()
	}
	if cfg.Cues == nil {
		cfg.Cues = system.NopCues{}
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	progress, err := cfg.Store.Load()
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		tuning:   cfg.Tuning,
		levels:   cfg.Levels,
		fullView: cfg.FullView,
		debug:    cfg.Debug,
		store:    cfg.Store,
		cues:     cfg.Cues,
		log:      cfg.Log,
		factory:  entity.NewFactory(cfg.Tuning),
		progress: progress,
	}

	start := cfg.Start
	if start < 0 {
		start = progress.Level
	}
	lvl, ok := s.levels.ByIndex(start)
	if !ok {
		lvl = s.levels[0]
		if cfg.Start >= 0 {
			s.log.Warn("unknown start level, using first", zap.Int("index", cfg.Start))
		}
	}
	if err := s.Load(lvl); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the world with a freshly built copy of lvl.
func (s *Simulation) Load(lvl *levels.Level) error {
	w := ecs.NewWorld()
	player, err := s.factory.BuildLevel(w, lvl)
	if err != nil {
		return fmt.Errorf("sim: load %s: %w", lvl.Name, err)
	}

	state := system.NewGameState(lvl)
	state.FullView = s.fullView
	state.DebugBoxes = s.debug
	update := system.NewWorldUpdateSystem(system.WorldUpdateConfig{
		Tuning:  s.tuning,
		State:   state,
		Spawner: s.factory,
		Cues:    s.cues,
		Log:     s.log.Named("world"),
	})
	update.Win.OnComplete = s.recordCompletion

	s.World = w
	s.State = state
	s.Player = player
	s.physics = system.NewPhysicsSystem(s.tuning)
	s.update = update
	s.camera = system.NewCameraSystem(s.tuning, state)
	s.camera.Snap(w)

	s.log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("index", lvl.Index),
		zap.Int("entities", len(ecs.Entities(w))),
	)
	if lvl.BGM != "" {
		s.cues.Sound(lvl.BGM)
	}
	return nil
}

// Level returns the level being played.
func (s *Simulation) Level() *levels.Level {
	return s.State.Level
}

// Finished reports whether the last level has been completed.
func (s *Simulation) Finished() bool {
	return s.finished
}

// Progress returns the persisted progress.
func (s *Simulation) Progress() *save.Progress {
	return s.progress
}

// SetInput stores this frame's input sample on the player.
func (s *Simulation) SetInput(in component.Input) {
	if err := ecs.Add(s.World, s.Player, component.InputComponent.Kind(), &in); err != nil {
		s.log.Debug("input dropped", zap.Error(err))
	}
}

// Step advances the simulation by dtMs and applies the frame's outcome.
func (s *Simulation) Step(dtMs float64) (system.Outcome, error) {
	if s.finished {
		return system.OutcomeNone, nil
	}

	s.physics.Update(s.World, dtMs)
	out := s.update.Update(s.World, dtMs)
	s.camera.Update(s.World, dtMs)

	switch out {
	case system.OutcomeRestart:
		return out, s.Load(s.State.Level)
	case system.OutcomeAdvance:
		next, ok := s.levels.Next(s.State.Level.Index)
		if !ok {
			s.finished = true
			s.log.Info("all levels complete")
			return out, nil
		}
		return out, s.Load(next)
	}
	return out, nil
}

func (s *Simulation) recordCompletion(index int, elapsedMs float64) {
	if s.progress.Record(index, elapsedMs) {
		s.log.Info("new best time", zap.Int("level", index), zap.Float64("ms", elapsedMs))
	}
	if err := s.store.Save(s.progress); err != nil {
		s.log.Error("save progress", zap.Error(err))
	}
}

// Reload applies an edited level or script file. A changed level replaces its
// entry in the set; the current level is rebuilt when it is affected.
func (s *Simulation) Reload(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".tengo") {
		if s.State.Level.Script == "" || filepath.Base(path) != filepath.Base(s.State.Level.Script) {
			return nil
		}
		s.log.Info("script changed, rebuilding level", zap.String("file", path))
		return s.Load(s.State.Level)
	}

	lvl, err := levels.Load(filepath.Base(path))
	if err != nil {
		return err
	}
	replaced := false
	for i, l := range s.levels {
		if l.Index == lvl.Index {
			s.levels[i] = lvl
			replaced = true
			break
		}
	}
	if !replaced {
		s.log.Warn("reloaded level has no slot", zap.String("level", lvl.Name), zap.Int("index", lvl.Index))
		return nil
	}
	if lvl.Index != s.State.Level.Index {
		return nil
	}
	s.log.Info("level changed, rebuilding", zap.String("level", lvl.Name))
	return s.Load(lvl)
}

// DrainReloads applies every pending file change without blocking. It is
// called between frames with the watcher's event channel.
func (s *Simulation) DrainReloads(events <-chan string) {
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return
			}
			if err := s.Reload(path); err != nil {
				s.log.Warn("reload failed", zap.String("file", path), zap.Error(err))
			}
		default:
			return
		}
	}
}
