package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// CombatSystem consumes the collision log. Records come in both orderings
// and may repeat; every effect is guarded so a pair applies it at most once
// per frame. The log is cleared afterwards.
type CombatSystem struct {
	tuning *prefabs.Tuning
	state  *GameState
	cues   Cues
	log    *zap.Logger

	handled map[ecs.Entity]bool
}

func NewCombatSystem(tuning *prefabs.Tuning, state *GameState, cues Cues, log *zap.Logger) *CombatSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	if cues == nil {
		cues = NopCues{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CombatSystem{tuning: tuning, state: state, cues: cues, log: log, handled: map[ecs.Entity]bool{}}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clear(s.handled)
	log := w.Collisions()
	defer log.Clear()

	for _, c := range log.Items() {
		if !ecs.IsAlive(w, c.Self) || !ecs.IsAlive(w, c.Other) {
			continue
		}
		self, other := classOf(w, c.Self), classOf(w, c.Other)
		switch self {
		case component.ClassPlayer:
			s.player(w, c.Self, c.Other, other)
		case component.ClassBook:
			s.book(w, c.Self, c.Other, other)
		case component.ClassZombie:
			if other == component.ClassStudent {
				s.infect(w, c.Self, c.Other)
			}
		}
	}
}

func (s *CombatSystem) player(w *ecs.World, player, other ecs.Entity, class component.Class) {
	if ecs.Has(w, player, component.DeathTimerComponent.Kind()) || ecs.Has(w, player, component.CutsceneTimerComponent.Kind()) {
		return
	}
	switch {
	case class.IsHostile():
		if ecs.Has(w, other, component.ZombieDeathTimerComponent.Kind()) {
			return
		}
		if b, ok := ecs.Get(w, other, component.BossComponent.Kind()); ok && b.Dead {
			return
		}
		s.hurt(w, player)
	case class == component.ClassCollectible:
		p := ecs.MustGet(w, player, component.PlayerComponent.Kind())
		p.Collected++
		ecs.DestroyEntity(w, other)
		s.cues.Sound("collect")
	case class == component.ClassBook:
		book, ok := ecs.Get(w, other, component.BookComponent.Kind())
		if !ok || book.Carried || book.Thrown || s.carrying(w, player) {
			return
		}
		book.Carried = true
		book.Holder = uint64(player)
		s.cues.Sound("pickup")
	case class == component.ClassDoor:
		if s.state == nil || !s.state.Complete {
			return
		}
		if err := ecs.Add(w, player, component.CutsceneTimerComponent.Kind(), &component.CutsceneTimer{TimerMs: s.tuning.Timers.CutsceneMs}); err != nil {
			panic("combat system: add cutscene timer: " + err.Error())
		}
		if m, ok := ecs.Get(w, player, component.MotionComponent.Kind()); ok {
			m.Velocity.X = 0
		}
		s.cues.Sound("door")
	}
}

// hurt takes a life, or starts the death timer on the last one. The lost
// life window makes the player ignore further hits.
func (s *CombatSystem) hurt(w *ecs.World, player ecs.Entity) {
	if s.handled[player] || ecs.Has(w, player, component.LostLifeTimerComponent.Kind()) {
		return
	}
	s.handled[player] = true

	p := ecs.MustGet(w, player, component.PlayerComponent.Kind())
	m := ecs.MustGet(w, player, component.MotionComponent.Kind())
	p.Lives--
	if p.Lives > 0 {
		if err := ecs.Add(w, player, component.LostLifeTimerComponent.Kind(), &component.LostLifeTimer{TimerMs: s.tuning.Timers.LostLifeMs}); err != nil {
			panic("combat system: add lost life timer: " + err.Error())
		}
		s.cues.Sound("hurt")
		return
	}

	if err := ecs.Add(w, player, component.DeathTimerComponent.Kind(), &component.DeathTimer{
		TimerMs:   s.tuning.Timers.DeathMs,
		Direction: -m.Facing(),
	}); err != nil {
		panic("combat system: add death timer: " + err.Error())
	}
	m.Velocity.X = 0
	if s.state != nil {
		s.state.GameOver = true
	}
	s.cues.Sound("death")
	s.log.Info("player out of lives")
}

func (s *CombatSystem) carrying(w *ecs.World, player ecs.Entity) bool {
	found := false
	ecs.ForEach(w, component.BookComponent.Kind(), func(_ ecs.Entity, b *component.Book) {
		if b.Carried && b.Holder == uint64(player) {
			found = true
		}
	})
	return found
}

// book applies a thrown book's hit. The book drops after its first hit.
func (s *CombatSystem) book(w *ecs.World, bookE, other ecs.Entity, class component.Class) {
	book, ok := ecs.Get(w, bookE, component.BookComponent.Kind())
	if !ok || !book.Thrown {
		return
	}
	switch class {
	case component.ClassZombie:
		if ecs.Has(w, other, component.ZombieDeathTimerComponent.Kind()) {
			return
		}
		dir := 1.0
		if bm, ok := ecs.Get(w, bookE, component.MotionComponent.Kind()); ok && bm.Velocity.X < 0 {
			dir = -1
		}
		if err := ecs.Add(w, other, component.ZombieDeathTimerComponent.Kind(), &component.ZombieDeathTimer{
			TimerMs:   s.tuning.Timers.ZombieDeathMs,
			Direction: dir,
		}); err != nil {
			panic("combat system: add zombie death timer: " + err.Error())
		}
		s.cues.Sound("zombie_death")
	case component.ClassBoss:
		boss, ok := ecs.Get(w, other, component.BossComponent.Kind())
		if !ok || boss.Dead || ecs.Has(w, other, component.LostLifeTimerComponent.Kind()) {
			return
		}
		boss.Health--
		if err := ecs.Add(w, other, component.LostLifeTimerComponent.Kind(), &component.LostLifeTimer{TimerMs: s.tuning.Timers.LostLifeMs}); err != nil {
			panic("combat system: add boss stun: " + err.Error())
		}
		if err := ecs.Add(w, other, component.TintComponent.Kind(), &component.Tint{Color: colornames.Red}); err != nil {
			panic("combat system: add boss tint: " + err.Error())
		}
		s.cues.Sound("boss_hit")
	default:
		return
	}
	book.Thrown = false
	if bm, ok := ecs.Get(w, bookE, component.MotionComponent.Kind()); ok {
		bm.Velocity = cp.Vector{}
		bm.OffGround = true
	}
}

func (s *CombatSystem) infect(w *ecs.World, zombie, student ecs.Entity) {
	if ecs.Has(w, zombie, component.ZombieDeathTimerComponent.Kind()) || ecs.Has(w, student, component.InfectionTimerComponent.Kind()) {
		return
	}
	if err := ecs.Add(w, student, component.InfectionTimerComponent.Kind(), &component.InfectionTimer{TimerMs: s.tuning.Timers.InfectionMs}); err != nil {
		panic("combat system: add infection timer: " + err.Error())
	}
	if err := ecs.Add(w, student, component.TintComponent.Kind(), &component.Tint{Color: colornames.Green}); err != nil {
		panic("combat system: add infection tint: " + err.Error())
	}
	s.cues.Sound("infect")
}
