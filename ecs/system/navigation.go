package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/common"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/levels"
	"github.com/milk9111/outbreak/prefabs"
)

// NavigationSystem steers zombies and the boss towards the player using the
// level's tier table and ladders.
type NavigationSystem struct {
	tuning *prefabs.Tuning
	state  *GameState
}

func NewNavigationSystem(tuning *prefabs.Tuning, state *GameState) *NavigationSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	return &NavigationSystem{tuning: tuning, state: state}
}

// walker is the navigation view shared by zombies and the boss.
type walker struct {
	m          *component.Motion
	direction  *float64
	climbTo    *int
	speed      float64
	climbSpeed float64
}

// Zombie runs one navigation step for a zombie chasing target.
func (n *NavigationSystem) Zombie(m *component.Motion, ai *component.ZombieAI, target *component.Motion) {
	if n == nil || m == nil || ai == nil || n.state == nil || n.state.Level == nil {
		return
	}
	lvl := n.state.Level
	zt := n.tuning.Zombie
	wk := walker{m: m, direction: &ai.Direction, climbTo: &ai.ClimbTo, speed: zt.WalkSpeed, climbSpeed: zt.ClimbSpeed}

	if lvl.Kind == levels.KindBus {
		m.Velocity.X = 0
		ai.Mode = component.AnimIdle
		return
	}

	if m.Climbing {
		n.climb(lvl, wk)
		ai.Mode = component.AnimClimb
		return
	}

	if m.OffGround {
		return
	}

	switch {
	case target == nil:
		m.Velocity.X = 0
	case lvl.Kind == levels.KindSewer:
		n.sewer(lvl, m, ai, target)
	default:
		n.chase(lvl, wk, target, lvl.Kind != levels.KindArena)
	}

	if m.Climbing {
		ai.Mode = component.AnimClimb
		return
	}

	n.jumpPoints(lvl, m, ai.Direction)

	if (ai.BlockedLeft && m.Velocity.X < 0) || (ai.BlockedRight && m.Velocity.X > 0) {
		m.Velocity.X = 0
	}

	ai.Mode = n.mode(lvl, m, target)
}

// chase walks towards the target on the same tier and routes through the
// nearest ladder otherwise. crossTier false holds position when the target is
// on another tier.
func (n *NavigationSystem) chase(lvl *levels.Level, wk walker, target *component.Motion, crossTier bool) {
	m := wk.m
	tier := lvl.Tier(m.Feet())
	targetTier := lvl.Tier(target.Feet())

	if tier == targetTier {
		walkToward(wk, target.Position.X)
		return
	}
	if !crossTier {
		m.Velocity.X = 0
		return
	}

	var ladders []float64
	dest, vy := tier+1, -wk.climbSpeed
	if targetTier > tier {
		ladders = lvl.LaddersFrom(tier)
	} else {
		ladders = lvl.LaddersFrom(tier - 1)
		dest, vy = tier-1, wk.climbSpeed
	}

	lx, ok := levels.NearestLadder(ladders, m.Position.X)
	if !ok {
		walkToward(wk, target.Position.X)
		return
	}
	if abs(m.Position.X-lx) <= n.tuning.Zombie.LadderTolerance {
		m.Position.X = lx
		m.Velocity = cp.Vector{X: 0, Y: vy}
		m.Climbing = true
		*wk.climbTo = dest
		return
	}
	walkToward(wk, lx)
}

// climb keeps climbing until the feet reach the destination floor.
func (n *NavigationSystem) climb(lvl *levels.Level, wk walker) {
	m := wk.m
	floor := lvl.Floor(*wk.climbTo)
	up := m.Velocity.Y < 0
	if (up && m.Feet() <= floor) || (!up && m.Feet() >= floor) {
		m.Climbing = false
		m.Velocity.Y = 0
		m.OffGround = true
		return
	}
	m.Velocity.X = 0
	if up {
		m.Velocity.Y = -wk.climbSpeed
	} else {
		m.Velocity.Y = wk.climbSpeed
	}
}

func walkToward(wk walker, x float64) {
	m := wk.m
	dx := x - m.Position.X
	if abs(dx) < 1 {
		m.Velocity.X = 0
		return
	}
	dir := common.Sign(dx)
	*wk.direction = dir
	m.Velocity.X = dir * wk.speed
	m.ReflectX = dir < 0
}

// sewer chases horizontally when the target is close, otherwise patrols and
// turns around at the level edges. A target to the left never changes the
// latched direction; only a target to the right or an edge does.
func (n *NavigationSystem) sewer(lvl *levels.Level, m *component.Motion, ai *component.ZombieAI, target *component.Motion) {
	st := n.tuning.Sewer
	if ai.Direction == 0 {
		ai.Direction = -1
	}

	box := m.Box()
	if (ai.Direction < 0 && (box.L <= 0 || ai.BlockedLeft)) || (ai.Direction > 0 && (box.R >= lvl.Width || ai.BlockedRight)) {
		ai.Direction = -ai.Direction
	}

	dx := target.Position.X - m.Position.X
	dy := abs(target.Feet() - m.Feet())
	speed := st.PatrolSpeed
	if abs(dx) < st.ChaseRange && dy < st.ChaseHeight {
		speed = n.tuning.Zombie.WalkSpeed
		if dx > st.Hysteresis {
			ai.Direction = 1
		}
	}
	m.Velocity.X = ai.Direction * speed
	m.ReflectX = ai.Direction < 0
}

func (n *NavigationSystem) jumpPoints(lvl *levels.Level, m *component.Motion, direction float64) {
	if m.OffGround || m.Climbing {
		return
	}
	zt := n.tuning.Zombie
	for _, jx := range lvl.JumpsOn(lvl.Tier(m.Feet())) {
		if abs(m.Position.X-jx) <= zt.JumpTolerance {
			dir := direction
			if dir == 0 {
				dir = common.Sign(m.Velocity.X)
			}
			m.Velocity = cp.Vector{X: dir * zt.JumpVX, Y: zt.JumpVY}
			m.OffGround = true
			return
		}
	}
}

func (n *NavigationSystem) mode(lvl *levels.Level, m, target *component.Motion) component.AnimMode {
	if target != nil && lvl.Tier(m.Feet()) == lvl.Tier(target.Feet()) &&
		abs(target.Position.X-m.Position.X) < n.tuning.Zombie.AttackRange {
		return component.AnimAttack
	}
	if m.Velocity.X == 0 {
		return component.AnimIdle
	}
	return component.AnimRun
}

// Boss runs one movement step for a boss that is not stunned. The summon
// phase halts the boss; the caller handles the phase side effects.
func (n *NavigationSystem) Boss(m *component.Motion, boss *component.Boss, target *component.Motion) {
	if n == nil || m == nil || boss == nil || n.state == nil || n.state.Level == nil {
		return
	}
	lvl := n.state.Level
	wk := walker{m: m, direction: &boss.Direction, climbTo: &boss.ClimbTo, speed: n.tuning.Boss.WalkSpeed, climbSpeed: n.tuning.Zombie.ClimbSpeed}

	if boss.Phase == component.BossPhaseSummon {
		m.Velocity.X = 0
		return
	}
	if m.Climbing {
		n.climb(lvl, wk)
		return
	}
	if m.OffGround || target == nil {
		return
	}

	switch boss.Variant {
	case component.BossArena:
		if lvl.Tier(m.Feet()) == lvl.Tier(target.Feet()) {
			walkToward(wk, target.Position.X)
			return
		}
		if boss.Direction == 0 {
			boss.Direction = -1
		}
		m.Velocity.X = boss.Direction * wk.speed
		m.ReflectX = boss.Direction < 0
	default:
		n.chase(lvl, wk, target, true)
	}
}
