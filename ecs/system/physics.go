package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/common"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
)

// PhysicsSystem integrates motion and detects pairwise collisions. The
// collision log it fills is consumed and cleared by the world update.
type PhysicsSystem struct {
	tuning *prefabs.Tuning
	bodies []body
}

type body struct {
	e     ecs.Entity
	class component.Class
	m     *component.Motion
}

func NewPhysicsSystem(tuning *prefabs.Tuning) *PhysicsSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	return &PhysicsSystem{tuning: tuning}
}

func (p *PhysicsSystem) Update(w *ecs.World, dtMs float64) {
	if p == nil || w == nil {
		return
	}
	p.integrate(w, dtMs)
	p.detect(w)
}

func (p *PhysicsSystem) gravity(cat component.GravityCategory) float64 {
	g := p.tuning.Gravity
	switch cat {
	case component.GravityHuman:
		return g.Human
	case component.GravityZombie:
		return g.Zombie
	case component.GravityWeapon:
		return g.Weapon
	case component.GravityWheel:
		return g.Wheel
	case component.GravityBoss:
		return g.Boss
	case component.GravityVehicle:
		return g.Vehicle
	}
	return 0
}

func (p *PhysicsSystem) integrate(w *ecs.World, dtMs float64) {
	dt := dtMs / 1000
	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		class := classOf(w, e)

		if m.OffGround && !m.Climbing {
			m.Velocity.Y += p.gravity(class.Gravity()) * dt
		}

		if class == component.ClassPlayer {
			if m.Velocity.X < 0 {
				m.ReflectX = true
			} else if m.Velocity.X > 0 {
				m.ReflectX = false
			}
		}

		if bz, ok := ecs.Get(w, e, component.BezierComponent.Kind()); ok {
			p.advanceCurve(m, bz, dtMs)
		} else if f, ok := ecs.Get(w, e, component.FallingComponent.Kind()); ok {
			m.Position.Y += f.Drift * dt
		}

		mul := m.SpeedMul
		if mul <= 0 {
			mul = 1
		}
		m.Position = m.Position.Add(m.Velocity.Mult(mul * dt))
	})
}

// advanceCurve evaluates the curve at t = time/1000 during the active window,
// snaps back to the first control point once the cycle ends and otherwise
// only advances the clock.
func (p *PhysicsSystem) advanceCurve(m *component.Motion, bz *component.Bezier, dtMs float64) {
	switch {
	case bz.TimeMs < p.tuning.Curve.ActiveMs:
		t := bz.TimeMs / 1000
		pts := bz.Points
		if bz.Quadratic && len(pts) >= 3 {
			m.Position = common.QuadraticBezier(pts[0], pts[1], pts[2], t)
		} else if len(pts) >= 4 {
			m.Position = common.CubicBezier(pts[0], pts[1], pts[2], pts[3], t)
		}
		bz.TimeMs += dtMs
	case bz.TimeMs >= p.tuning.Curve.CycleMs:
		bz.TimeMs = 0
		if len(bz.Points) > 0 {
			m.Position = bz.Points[0]
		}
	default:
		bz.TimeMs += dtMs
	}
}

func (p *PhysicsSystem) detect(w *ecs.World) {
	log := w.Collisions()
	log.Clear()

	p.bodies = p.bodies[:0]
	ecs.ForEach2(w, component.MotionComponent.Kind(), component.KindComponent.Kind(), func(e ecs.Entity, m *component.Motion, k *component.Kind) {
		if k.Class.IsDecoration() || k.Class == component.ClassNone {
			return
		}
		p.bodies = append(p.bodies, body{e: e, class: k.Class, m: m})
	})

	for i := 0; i < len(p.bodies); i++ {
		for j := i + 1; j < len(p.bodies); j++ {
			a, b := p.bodies[i], p.bodies[j]
			if a.class.IsStatic() && b.class.IsStatic() {
				continue
			}
			p.pair(w, a, b)
		}
	}
}

func (p *PhysicsSystem) pair(w *ecs.World, a, b body) {
	if b.class == component.ClassSpike {
		a, b = b, a
	}
	if a.class == component.ClassSpike {
		switch b.class {
		case component.ClassPlayer:
			if p.spikeHitsBox(w, a, b) {
				w.Collisions().PushPair(a.e, b.e)
			}
			return
		case component.ClassWheel, component.ClassBook:
			p.bounceOffSpike(w, a, b)
			return
		}
	}
	if common.CircleOverlap(a.m.Position, a.m.Size(), b.m.Position, b.m.Size()) {
		w.Collisions().PushPair(a.e, b.e)
	}
}

func (p *PhysicsSystem) spikeVertices(w *ecs.World, spike body) []cp.Vector {
	mesh, ok := ecs.Get(w, spike.e, component.MeshComponent.Kind())
	if !ok {
		return common.BoxPolygon(spike.m.Box())
	}
	return common.ScaleMesh(mesh.Vertices, spike.m.Position, p.tuning.Spike.MeshScale)
}

// spikeHitsBox is the precise player test: a scaled spike vertex inside the
// player box, or the player box enclosed by the spike's extent.
func (p *PhysicsSystem) spikeHitsBox(w *ecs.World, spike, player body) bool {
	verts := p.spikeVertices(w, spike)
	box := player.m.Box()
	for _, v := range verts {
		if common.BoxContainsPoint(box, v) {
			return true
		}
	}
	return common.BoxContainsBox(common.Extent(verts), box)
}

// bounceOffSpike resolves a wheel or book against a spike with SAT and an
// impulse instead of a collision record. Only the movable side is corrected.
func (p *PhysicsSystem) bounceOffSpike(w *ecs.World, spike, mover body) {
	mesh, ok := ecs.Get(w, mover.e, component.MeshComponent.Kind())
	var poly []cp.Vector
	if ok {
		poly = common.TransformMesh(mesh.Vertices, mover.m.Position, mover.m.Scale, mover.m.Angle)
	} else {
		poly = common.BoxPolygon(mover.m.Box())
	}
	spikePoly := p.spikeVertices(w, spike)

	hit := common.SAT(poly, spikePoly)
	if !hit.Hit {
		return
	}

	axis := hit.Axis
	if axis.Dot(common.Centroid(poly).Sub(common.Centroid(spikePoly))) < 0 {
		axis = axis.Neg()
	}

	a := common.Body{Position: mover.m.Position, Velocity: mover.m.Velocity, InvMass: invMass(w, mover.e)}
	b := common.Body{Position: spike.m.Position, Velocity: spike.m.Velocity, InvMass: invMass(w, spike.e)}
	if a.InvMass == 0 && b.InvMass == 0 {
		a.InvMass = 1
	}
	common.Bounce(&a, &b, p.tuning.Wheel.Restitution)
	common.Separate(&a, &b, axis, hit.Depth)

	mover.m.Position, mover.m.Velocity = a.Position, a.Velocity
	if b.InvMass > 0 {
		spike.m.Position, spike.m.Velocity = b.Position, b.Velocity
	}
}

func invMass(w *ecs.World, e ecs.Entity) float64 {
	m, ok := ecs.Get(w, e, component.MassComponent.Kind())
	if !ok || m.Value <= 0 {
		return 0
	}
	return 1 / m.Value
}
