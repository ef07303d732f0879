package common

import "github.com/jakecoffman/cp"

// BoxContainsPoint reports whether p lies inside bb, edges included.
func BoxContainsPoint(bb cp.BB, p cp.Vector) bool {
	return p.X >= bb.L && p.X <= bb.R && p.Y >= bb.B && p.Y <= bb.T
}

// BoxContainsBox reports whether inner lies fully inside outer.
func BoxContainsBox(outer, inner cp.BB) bool {
	return inner.L >= outer.L && inner.R <= outer.R && inner.B >= outer.B && inner.T <= outer.T
}

// BoxGap returns the edge gap between two boxes on each axis. Overlapping
// axes report a negative gap.
func BoxGap(a, b cp.BB) (gx, gy float64) {
	gx = max(a.L-b.R, b.L-a.R)
	gy = max(a.B-b.T, b.B-a.T)
	return gx, gy
}
