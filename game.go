package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/outbreak/levels"
	"github.com/milk9111/outbreak/prefabs"
	"github.com/milk9111/outbreak/sim"
	"go.uber.org/zap"
)

type Game struct {
	frames int
	paused bool
	debug  bool

	sim     *sim.Simulation
	watcher *levels.Watcher
	tuning  *prefabs.Tuning
	log     *zap.Logger
}

func NewGame(s *sim.Simulation, watcher *levels.Watcher, tuning *prefabs.Tuning, log *zap.Logger, debug bool) *Game {
	return &Game{
		debug:   debug,
		sim:     s,
		watcher: watcher,
		tuning:  tuning,
		log:     log,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		for _, line := range g.sim.World.Describe() {
			g.log.Debug(line)
		}
	}

	if g.watcher != nil {
		g.sim.DrainReloads(g.watcher.Events)
		select {
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("level watcher", zap.Error(err))
			}
		default:
		}
	}

	if g.paused || g.sim.Finished() {
		return nil
	}

	g.frames++
	g.sim.SetInput(readInput())
	_, err := g.sim.Step(1000 / float64(ebiten.TPS()))
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWorld(screen)
	g.drawHUD(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.tuning.Camera.Width, g.tuning.Camera.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
