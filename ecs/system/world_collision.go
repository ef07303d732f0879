package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/common"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
)

// block is a static entity cached for one world update.
type block struct {
	e     ecs.Entity
	class component.Class
	box   cp.BB
}

// collectBlocks gathers the static geometry once per frame.
func collectBlocks(w *ecs.World) []block {
	var out []block
	ecs.ForEach2(w, component.KindComponent.Kind(), component.MotionComponent.Kind(), func(e ecs.Entity, k *component.Kind, m *component.Motion) {
		if k.Class.IsStatic() {
			out = append(out, block{e: e, class: k.Class, box: m.Box()})
		}
	})
	return out
}

// WorldCollisionSystem resolves moving entities against static blocks and
// the level bounds.
type WorldCollisionSystem struct {
	tuning *prefabs.Tuning
	state  *GameState
}

func NewWorldCollisionSystem(tuning *prefabs.Tuning, state *GameState) *WorldCollisionSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	return &WorldCollisionSystem{tuning: tuning, state: state}
}

// contact reports what a resolve pass touched.
type contact struct {
	grounded bool
	touched  bool
}

// Resolve runs the block and bounds passes for one entity.
func (s *WorldCollisionSystem) Resolve(w *ecs.World, e ecs.Entity, class component.Class, m *component.Motion, blocks []block, dtMs float64) {
	if s == nil || m == nil {
		return
	}
	wasGrounded := !m.OffGround

	if ai, ok := ecs.Get(w, e, component.ZombieAIComponent.Kind()); ok {
		ai.BlockedLeft, ai.BlockedRight = false, false
	}
	if class == component.ClassPlayer {
		s.playerLadder(w, e, m, blocks, dtMs)
	}

	var c contact
	for _, b := range blocks {
		if b.class == component.ClassLadder {
			continue
		}
		if m.Climbing && b.class == component.ClassPlatform {
			continue
		}
		box := m.Box()
		gx, gy := common.BoxGap(box, b.box)
		if gx >= s.tuning.World.Locality || gy >= s.tuning.World.Locality {
			continue
		}
		s.resolveBlock(w, e, class, m, b, &c)
	}

	s.clampBounds(class, m, &c)

	if !c.grounded && !c.touched && wasGrounded && !m.Climbing {
		s.ledgeNudge(class, m, &c)
	}

	if m.Climbing {
		m.OffGround = false
		return
	}
	m.OffGround = !c.grounded
}

const touchSlack = 0.5

func (s *WorldCollisionSystem) resolveBlock(w *ecs.World, e ecs.Entity, class component.Class, m *component.Motion, b block, c *contact) {
	box := m.Box()
	size := m.Size()
	band := s.tuning.World.LandBand

	hOverlap := box.R > b.box.L && box.L < b.box.R
	if hOverlap && m.Velocity.Y >= 0 && box.T >= b.box.B-touchSlack && box.T <= b.box.B+band {
		m.Position.Y = b.box.B - size.Y/2
		m.Velocity.Y = 0
		c.grounded = true
		c.touched = true
		s.landed(w, e, class, m)
		return
	}
	if hOverlap && m.Velocity.Y < 0 && box.B <= b.box.T && box.B >= b.box.T-band {
		m.Position.Y = b.box.T + size.Y/2
		m.Velocity.Y = 0
		c.touched = true
		return
	}

	vOverlap := box.T > b.box.B+touchSlack && box.B < b.box.T-touchSlack
	if !vOverlap {
		return
	}
	side := size.X * s.tuning.World.SideFraction
	switch {
	case box.R >= b.box.L && box.R-b.box.L <= side && box.L < b.box.L:
		m.Position.X = b.box.L - size.X/2
		c.touched = true
		s.sideHit(w, e, class, m, b, 1)
	case box.L <= b.box.R && b.box.R-box.L <= side && box.R > b.box.R:
		m.Position.X = b.box.R + size.X/2
		c.touched = true
		s.sideHit(w, e, class, m, b, -1)
	}
}

// landed handles class-specific effects of touching down.
func (s *WorldCollisionSystem) landed(w *ecs.World, e ecs.Entity, class component.Class, m *component.Motion) {
	if class != component.ClassBook {
		return
	}
	if book, ok := ecs.Get(w, e, component.BookComponent.Kind()); ok && book.Thrown {
		book.Thrown = false
		m.Velocity.X = 0
		m.Angle = 0
	}
}

// sideHit applies the per-class response to running into a block edge. dir
// is the side of the entity that hit: 1 right, -1 left.
func (s *WorldCollisionSystem) sideHit(w *ecs.World, e ecs.Entity, class component.Class, m *component.Motion, b block, dir float64) {
	switch class {
	case component.ClassPlayer:
		m.Velocity.X = 0
	case component.ClassZombie:
		if ai, ok := ecs.Get(w, e, component.ZombieAIComponent.Kind()); ok {
			if dir > 0 {
				ai.BlockedRight = true
			} else {
				ai.BlockedLeft = true
			}
		}
	case component.ClassStudent, component.ClassWheel:
		if b.class == component.ClassPlatform && !m.OffGround {
			m.Velocity.Y = -s.tuning.Student.HopSpeed
			m.OffGround = true
			return
		}
		m.Velocity.X = -dir * abs(m.Velocity.X)
	case component.ClassBoss:
		if boss, ok := ecs.Get(w, e, component.BossComponent.Kind()); ok {
			boss.Direction = -dir
		}
		m.Velocity.X = -dir * abs(m.Velocity.X)
	case component.ClassBook:
		m.Velocity.X = 0
	}
}

func (s *WorldCollisionSystem) clampBounds(class component.Class, m *component.Motion, c *contact) {
	if s.state == nil || s.state.Level == nil {
		return
	}
	lvl := s.state.Level
	size := m.Size()
	box := m.Box()

	if box.L < 0 {
		m.Position.X = size.X / 2
		s.boundsX(class, m, 1)
		c.touched = true
	} else if box.R > lvl.Width {
		m.Position.X = lvl.Width - size.X/2
		s.boundsX(class, m, -1)
		c.touched = true
	}

	if box.B < 0 {
		m.Position.Y = size.Y / 2
		if m.Velocity.Y < 0 {
			m.Velocity.Y = 0
		}
	} else if box.T > lvl.Height {
		m.Position.Y = lvl.Height - size.Y/2
		m.Velocity.Y = 0
		c.grounded = true
	}
}

// boundsX stops the player at a level edge and reflects everything else
// towards inward.
func (s *WorldCollisionSystem) boundsX(class component.Class, m *component.Motion, inward float64) {
	if class == component.ClassPlayer {
		m.Velocity.X = 0
		return
	}
	m.Velocity.X = inward * abs(m.Velocity.X)
}

// ledgeNudge keeps wheels and students on their platform: stepping off an
// edge with nothing underneath pushes them back and turns them around.
func (s *WorldCollisionSystem) ledgeNudge(class component.Class, m *component.Motion, c *contact) {
	if class != component.ClassWheel && class != component.ClassStudent {
		return
	}
	if m.Velocity.X == 0 || m.Velocity.Y < 0 {
		return
	}
	m.Position.X -= common.Sign(m.Velocity.X) * s.tuning.World.LedgeNudge
	m.Velocity.X = -m.Velocity.X
	c.grounded = true
}

// playerLadder handles climbing. Up and down start a climb while the player
// is inside a ladder column; descending stops one step before the ladder
// bottom so the player never falls through the floor.
func (s *WorldCollisionSystem) playerLadder(w *ecs.World, e ecs.Entity, m *component.Motion, blocks []block, dtMs float64) {
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	feet := m.Feet()
	ladder, ok := ladderAt(blocks, m.Position.X, feet)
	if !ok {
		if m.Climbing {
			m.Climbing = false
			m.Velocity.Y = 0
			m.OffGround = true
		}
		return
	}

	speed := s.tuning.Player.ClimbSpeed
	switch {
	case in.Up:
		if feet > ladder.B+touchSlack {
			m.Climbing = true
			m.Position.X = (ladder.L + ladder.R) / 2
			m.Velocity = cp.Vector{X: 0, Y: -speed}
		} else if m.Climbing {
			m.Climbing = false
			m.Position.Y = ladder.B - m.Size().Y/2
			m.Velocity.Y = 0
		}
	case in.Down:
		probe := feet + speed*dtMs/1000
		if probe > ladder.T {
			if m.Climbing {
				m.Climbing = false
				m.Velocity.Y = 0
			}
			return
		}
		m.Climbing = true
		m.Position.X = (ladder.L + ladder.R) / 2
		m.Velocity = cp.Vector{X: 0, Y: speed}
	case m.Climbing:
		m.Velocity = cp.Vector{}
	}
}

func ladderAt(blocks []block, x, feet float64) (cp.BB, bool) {
	for _, b := range blocks {
		if b.class != component.ClassLadder {
			continue
		}
		if x >= b.box.L && x <= b.box.R && feet >= b.box.B-touchSlack && feet <= b.box.T+touchSlack {
			return b.box, true
		}
	}
	return cp.BB{}, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
