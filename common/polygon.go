package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TransformMesh maps unit-space vertices to world space: scaled by half the
// box size, rotated by angle, then offset by pos.
func TransformMesh(verts []cp.Vector, pos, scale cp.Vector, angle float64) []cp.Vector {
	rot := cp.ForAngle(angle)
	hx, hy := math.Abs(scale.X)/2, math.Abs(scale.Y)/2
	out := make([]cp.Vector, len(verts))
	for i, v := range verts {
		local := cp.Vector{X: v.X * hx, Y: v.Y * hy}
		out[i] = local.Rotate(rot).Add(pos)
	}
	return out
}

// ScaleMesh maps unit-space vertices by a uniform factor around pos.
func ScaleMesh(verts []cp.Vector, pos cp.Vector, factor float64) []cp.Vector {
	out := make([]cp.Vector, len(verts))
	for i, v := range verts {
		out[i] = v.Mult(factor).Add(pos)
	}
	return out
}

// Extent returns the bounding box of a vertex set.
func Extent(verts []cp.Vector) cp.BB {
	if len(verts) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: verts[0].X, R: verts[0].X, B: verts[0].Y, T: verts[0].Y}
	for _, v := range verts[1:] {
		bb.L = math.Min(bb.L, v.X)
		bb.R = math.Max(bb.R, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}

// Centroid returns the vertex average.
func Centroid(verts []cp.Vector) cp.Vector {
	var c cp.Vector
	if len(verts) == 0 {
		return c
	}
	for _, v := range verts {
		c = c.Add(v)
	}
	return c.Mult(1 / float64(len(verts)))
}

// Overlap is the result of a separating axis test.
type Overlap struct {
	Hit bool
	// Depth and Axis give the minimum translation; Axis is unit length.
	Depth float64
	Axis  cp.Vector
}

// SAT tests two polygons on the normalised perpendicular of every edge of
// both. Full containment of either polygon counts as overlap.
func SAT(a, b []cp.Vector) Overlap {
	if len(a) < 2 || len(b) < 2 {
		return Overlap{}
	}
	res := Overlap{Hit: true, Depth: math.Inf(1)}
	tested := false
	for _, poly := range [2][]cp.Vector{a, b} {
		for i := range poly {
			edge := poly[(i+1)%len(poly)].Sub(poly[i])
			if edge.LengthSq() == 0 {
				continue
			}
			tested = true
			axis := edge.Perp().Normalize()
			min1, max1 := project(a, axis)
			min2, max2 := project(b, axis)
			if !(max1 < min2 || max2 < min1) {
				depth := math.Min(max1, max2) - math.Max(min1, min2)
				if depth < res.Depth {
					res.Depth = depth
					res.Axis = axis
				}
				continue
			}
			if contains(a, b) || contains(b, a) {
				return Overlap{Hit: true, Axis: axis}
			}
			return Overlap{}
		}
	}
	if !tested {
		return Overlap{}
	}
	return res
}

// PolygonsIntersect reports whether two polygons overlap in either order.
func PolygonsIntersect(a, b []cp.Vector) bool {
	return SAT(a, b).Hit
}

func project(poly []cp.Vector, axis cp.Vector) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range poly {
		p := v.Dot(axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

func contains(outer, inner []cp.Vector) bool {
	for _, v := range inner {
		if !PointInPolygon(v, outer) {
			return false
		}
	}
	return len(inner) > 0
}

// PointInPolygon is the even-odd ray test.
func PointInPolygon(p cp.Vector, poly []cp.Vector) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// BoxPolygon returns the corners of bb in loop order.
func BoxPolygon(bb cp.BB) []cp.Vector {
	return []cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
}

// CircleOverlap is the coarse test: each body's radius is half its box
// diagonal and the squared distance is compared with the larger squared radius.
func CircleOverlap(p1, size1, p2, size2 cp.Vector) bool {
	r1 := size1.LengthSq() / 4
	r2 := size2.LengthSq() / 4
	return p1.DistanceSq(p2) < math.Max(r1, r2)
}
