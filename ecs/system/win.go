package system

import (
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"go.uber.org/zap"
)

// WinSystem checks the level completion condition: no zombies left and every
// required collectible gathered. Boss levels first open the arena and then
// wait for the boss to be gone.
type WinSystem struct {
	state *GameState
	cues  Cues
	log   *zap.Logger
	// OnComplete is called once when the level completes.
	OnComplete func(levelIndex int, elapsedMs float64)
}

func NewWinSystem(state *GameState, cues Cues, log *zap.Logger) *WinSystem {
	if cues == nil {
		cues = NopCues{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WinSystem{state: state, cues: cues, log: log}
}

func (s *WinSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.state == nil || s.state.Level == nil {
		return
	}
	st := s.state
	if st.Complete || st.GameOver {
		return
	}

	player, ok := findClass(w, component.ClassPlayer)
	if !ok {
		return
	}
	p := ecs.MustGet(w, player, component.PlayerComponent.Kind())
	if countClass(w, component.ClassZombie, false) > 0 || p.Collected < st.Level.Required {
		return
	}

	if st.Level.HasBoss() {
		if !st.BossActive {
			st.BossActive = true
			s.removeBlockades(w)
			s.cues.Sound("boss")
			s.log.Info("boss activated", zap.String("level", st.Level.Name))
			return
		}
		if _, alive := ecs.First(w, component.BossComponent.Kind()); alive {
			return
		}
	}

	st.Complete = true
	ecs.ForEach(w, component.DoorComponent.Kind(), func(_ ecs.Entity, d *component.Door) {
		d.Open = true
	})
	s.cues.Sound("win")
	s.log.Info("level complete", zap.String("level", st.Level.Name), zap.Float64("elapsed_ms", st.ElapsedMs))
	if s.OnComplete != nil {
		s.OnComplete(st.Level.Index, st.ElapsedMs)
	}
}

func (s *WinSystem) removeBlockades(w *ecs.World) {
	for _, e := range w.Query(component.KindComponent.Kind()) {
		if classOf(w, e) == component.ClassBlockade {
			ecs.DestroyEntity(w, e)
		}
	}
}
