package engine

import "github.com/piwi3910/BoxPleat/internal/model"

type gp = model.GridPoint

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func unit(d gp) gp { return gp{X: sign(d.X), Y: sign(d.Y)} }

func axisAligned(a, b gp) bool { return a != b && (a.X == b.X || a.Y == b.Y) }

func between(v, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return a <= v && v <= b
}

// onSegment reports whether p lies on the axis-aligned segment a-b.
func onSegment(p, a, b gp) bool {
	if a.X == b.X {
		return p.X == a.X && between(p.Y, a.Y, b.Y)
	}
	if a.Y == b.Y {
		return p.Y == a.Y && between(p.X, a.X, b.X)
	}
	return false
}

func onPolyline(p gp, pl model.Polyline) bool {
	if len(pl) == 1 {
		return pl[0] == p
	}
	for i := 0; i+1 < len(pl); i++ {
		if onSegment(p, pl[i], pl[i+1]) {
			return true
		}
	}
	return false
}

// leftTurn reports a counter-clockwise turn at b.
func leftTurn(a, b, c gp) bool {
	return b.Sub(a).Cross(c.Sub(b)) > 0
}

// contact returns where two axis-aligned segments meet. For collinear
// overlaps of positive length, overlap is true and pts holds both ends of
// the shared interval.
func contact(a0, a1, b0, b1 gp) (overlap bool, pts []gp) {
	aVert, bVert := a0.X == a1.X, b0.X == b1.X
	if a0 == a1 {
		aVert = bVert
	}
	if b0 == b1 {
		bVert = aVert
	}
	if aVert == bVert {
		if aVert && a0.X != b0.X || !aVert && a0.Y != b0.Y {
			return false, nil
		}
		lo, hi := overlapRange(a0, a1, b0, b1, aVert)
		if lo > hi {
			return false, nil
		}
		p, q := a0, a0
		if aVert {
			p.Y, q.Y = lo, hi
		} else {
			p.X, q.X = lo, hi
		}
		if lo == hi {
			return false, []gp{p}
		}
		return true, []gp{p, q}
	}
	// Perpendicular: the crossing point is x of the vertical one, y of the horizontal one.
	v0, v1, h0, h1 := a0, a1, b0, b1
	if !aVert {
		v0, v1, h0, h1 = b0, b1, a0, a1
	}
	x := gp{X: v0.X, Y: h0.Y}
	if between(x.Y, v0.Y, v1.Y) && between(x.X, h0.X, h1.X) {
		return false, []gp{x}
	}
	return false, nil
}

func overlapRange(a0, a1, b0, b1 gp, vertical bool) (lo, hi int) {
	c := func(p gp) int {
		if vertical {
			return p.Y
		}
		return p.X
	}
	lo = max(min(c(a0), c(a1)), min(c(b0), c(b1)))
	hi = min(max(c(a0), c(a1)), max(c(b0), c(b1)))
	return lo, hi
}

// insideOrOn2 tests a point given in doubled coordinates against a closed
// rectilinear polygon given in grid coordinates. Boundary points count as inside.
func insideOrOn2(p2 gp, poly []gp) bool {
	r := ring[gp](poly)
	crossings := 0
	for i := range r {
		a, b := r.at(i).Scale(2), r.next(i).Scale(2)
		if onSegment(p2, a, b) {
			return true
		}
		if a.X != b.X || a.X <= p2.X {
			continue
		}
		lo, hi := min(a.Y, b.Y), max(a.Y, b.Y)
		if lo <= p2.Y && p2.Y < hi {
			crossings++
		}
	}
	return crossings%2 == 1
}

// sideOf maps a unit direction onto the budget side it points to.
func sideOf(d gp) model.Side {
	switch {
	case d.X > 0:
		return model.SideRight
	case d.X < 0:
		return model.SideLeft
	case d.Y > 0:
		return model.SideTop
	}
	return model.SideBottom
}

// rightNormal is the direction a quarter turn clockwise of d. For a
// counter-clockwise polygon edge it points away from the interior.
func rightNormal(d gp) gp { return gp{X: d.Y, Y: -d.X} }
