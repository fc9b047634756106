package engine

import (
	"fmt"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// job is a queued polyline, by arena index, and the shift its node carries.
type job struct {
	id    int
	shift model.Shift
}

// subPolyline is a piece of a split polyline that still needs subdividing.
type subPolyline struct {
	poly  model.Polyline
	shift model.Shift
}

// decomposer runs the three-part subdivision over an explicit work queue.
// Polylines live in an arena and the queue holds arena indices.
type decomposer struct {
	maxIter int
	arena   []model.Polyline
	queue   []job
	nodes   []model.ThreePart
}

// Decompose subdivides every concave part into three-part nodes and returns
// the flat list of all nodes, roots first in breadth-first order.
func Decompose(parts []model.Polyline, settings model.Settings) ([]model.ThreePart, error) {
	d := &decomposer{maxIter: settings.MaxIterations}
	for _, p := range parts {
		if len(p) >= 3 {
			dir := unit(p[1].Sub(p[0]))
			d.push(p, model.Shift{DX: dir.X, DY: dir.Y})
		}
	}
	for len(d.queue) > 0 {
		j := d.queue[0]
		d.queue = d.queue[1:]
		src := d.arena[j.id]

		node, children, err := d.split(src, j.shift)
		if err != nil {
			return nil, err
		}
		d.nodes = append(d.nodes, node)
		for _, c := range children {
			// Every child drops at least the first inset edge, so the
			// summed length strictly falls and the queue drains.
			if c.poly.Len() >= src.Len() {
				return nil, stageErr(StageDecompose, src,
					fmt.Errorf("%w: sub-polyline %v does not shrink", ErrIterationLimitExceeded, c.poly))
			}
			d.push(c.poly, c.shift)
		}
	}
	Logger().Debug("decomposed concave parts", "roots", len(parts), "nodes", len(d.nodes))
	return d.nodes, nil
}

func (d *decomposer) push(p model.Polyline, shift model.Shift) {
	d.arena = append(d.arena, p)
	d.queue = append(d.queue, job{id: len(d.arena) - 1, shift: shift})
}

// entrance classifies how a polyline's endpoints bound the rectangle.
type entrance int

const (
	cornerEntrance   entrance = iota // A and B on adjacent sides, squared through k
	parallelEntrance                 // A and B on one line
	loopEntrance                     // A == B
)

func (e entrance) String() string {
	switch e {
	case parallelEntrance:
		return "parallel"
	case loopEntrance:
		return "loop"
	}
	return "corner"
}

// inset is the rectangle grown into one polyline. Its near corner walks
// from a along dir. The far corner walks from b along dir, or along back
// for a loop, or stays on the side through k for a corner entrance.
type inset struct {
	kind    entrance
	a, b, k gp
	dir     gp
	back    gp
}

// farEdge returns the rectangle's far boundary at depth and the corners at
// which touching the polyline is allowed.
func (r inset) farEdge(depth int) (edge model.Polyline, corners []gp) {
	cA := r.a.Add(r.dir.Scale(depth))
	switch r.kind {
	case loopEntrance:
		cB := r.b.Add(r.back.Scale(depth))
		return model.Polyline{cA, cA.Add(r.back.Scale(depth)), cB}, []gp{cA, cB}
	case parallelEntrance:
		cB := r.b.Add(r.dir.Scale(depth))
		return model.Polyline{cA, cB}, []gp{cA, cB}
	}
	return model.Polyline{cA, r.k.Add(r.dir.Scale(depth))}, []gp{cA}
}

// farCorner returns where the far boundary leaves the polyline. For a
// corner entrance that is the last contact after the near corner, which
// equals the near corner when the far edge meets nothing else.
func (r inset) farCorner(work model.Polyline, ni, depth int) gp {
	switch r.kind {
	case loopEntrance:
		return r.b.Add(r.back.Scale(depth))
	case parallelEntrance:
		return r.b.Add(r.dir.Scale(depth))
	}
	return lastContact(work, ni, work[ni], r.k.Add(r.dir.Scale(depth)))
}

// split inscribes one rectangle into q and returns the node plus the
// sub-polylines that still need subdividing.
func (d *decomposer) split(q model.Polyline, shift model.Shift) (model.ThreePart, []subPolyline, error) {
	a, b := q.First(), q.Last()
	r := inset{a: a, b: b, k: b, dir: unit(q[1].Sub(q[0]))}
	region := []gp(clone(q))
	switch offset := b.Sub(a).Dot(r.dir); {
	case a == b:
		r.kind = loopEntrance
	case offset == 0:
		r.kind = parallelEntrance
	default:
		r.k = b.Sub(r.dir.Scale(offset))
		region = append(region, r.k)
	}

	reach, exhausted := probe(a, r.dir, region, 2*d.maxIter)
	if exhausted {
		return model.ThreePart{}, nil, stageErr(StageDecompose, q,
			fmt.Errorf("%w: region deeper than %d steps", ErrIterationLimitExceeded, d.maxIter))
	}

	// The near corner stays on the first edge; a far corner that walks
	// along the last edge stays on it too.
	limit := min(reach, distance(q[0], q[1]))
	if r.kind != cornerEntrance {
		r.back = unit(q[len(q)-2].Sub(b))
		limit = min(limit, distance(q[len(q)-2], b))
	}
	depth, err := d.grow(q, r, limit)
	if err != nil {
		return model.ThreePart{}, nil, err
	}
	if depth == 0 {
		return model.ThreePart{}, nil, stageErr(StageDecompose, q,
			fmt.Errorf("%w: no room for an inset corner", ErrSplitPointNotOnBoundary))
	}

	near := a.Add(r.dir.Scale(depth))
	work, ni, ok := insertSplit(q, near, false)
	if !ok {
		return model.ThreePart{}, nil, stageErr(StageDecompose, q,
			fmt.Errorf("%w: near corner %v", ErrSplitPointNotOnBoundary, near))
	}
	far := r.farCorner(work, ni, depth)
	fi := ni
	if far != near {
		work, fi, ok = insertSplit(work, far, true)
		if !ok || fi <= ni {
			return model.ThreePart{}, nil, stageErr(StageDecompose, q,
				fmt.Errorf("%w: far corner %v", ErrSplitPointNotOnBoundary, far))
		}
	}

	node := model.ThreePart{
		Shift:  shift,
		Source: q,
		Left:   clone(work[:ni+1]),
		Center: clone(work[ni+1 : fi]),
		Right:  clone(work[fi:]),
		Depth:  depth,
	}
	Logger().Debug("inscribed rectangle",
		"source", q.String(), "shift", shift, "depth", depth, "entrance", r.kind.String())

	onFarLine := func(p gp) bool { return p.Sub(near).Dot(r.dir) == 0 }
	var children []subPolyline
	if len(node.Left) >= 3 {
		children = append(children, subPolyline{node.Left, shift})
	}
	if right := trimLeading(node.Right, onFarLine); len(right) >= 3 {
		children = append(children, subPolyline{right, shift})
	}
	// A loop's center has no single line to re-close against.
	if len(node.Center) > 0 && r.kind != loopEntrance {
		for _, run := range centerRuns(work[ni:fi+1], onFarLine) {
			children = append(children, subPolyline{run, shift.Rotated()})
		}
	}
	return node, children, nil
}

// probe walks half steps from a along dir while the point stays inside or on
// the region. It returns the deepest whole step reached.
func probe(a, dir gp, region []gp, limit int) (reach int, exhausted bool) {
	last := 0
	for h := 1; h <= limit; h++ {
		p2 := a.Scale(2).Add(dir.Scale(h))
		if !insideOrOn2(p2, region) {
			return last / 2, false
		}
		last = h
	}
	return last / 2, true
}

// grow pushes the rectangle's far boundary one step at a time and returns
// the first depth at which it touches q, or limit when it never does.
func (d *decomposer) grow(q model.Polyline, r inset, limit int) (int, error) {
	depth := 0
	for t := 1; t <= limit; t++ {
		if t > d.maxIter {
			return 0, stageErr(StageDecompose, q, ErrIterationLimitExceeded)
		}
		depth = t
		edge, corners := r.farEdge(t)
		if farEdgeBlocked(edge, corners, q) {
			break
		}
	}
	return depth, nil
}

// farEdgeBlocked reports whether the far boundary overlaps q or touches it
// anywhere other than at the given corners.
func farEdgeBlocked(edge model.Polyline, corners []gp, q model.Polyline) bool {
	for j := 0; j+1 < len(edge); j++ {
		for i := 0; i+1 < len(q); i++ {
			overlap, pts := contact(edge[j], edge[j+1], q[i], q[i+1])
			if overlap {
				return true
			}
			for _, p := range pts {
				if !containsPoint(corners, p) {
					return true
				}
			}
		}
	}
	return false
}

// lastContact finds the point of q, latest in polyline order after index
// from, where q meets the far edge near-end. It returns near when there is none.
func lastContact(q model.Polyline, from int, near, end gp) gp {
	for i := len(q) - 2; i >= from; i-- {
		_, pts := contact(near, end, q[i], q[i+1])
		best, found := gp{}, false
		for _, p := range pts {
			if p == near {
				continue
			}
			if !found || distance(q[i+1], p) < distance(q[i+1], best) {
				best, found = p, true
			}
		}
		if found {
			return best
		}
	}
	return near
}

// insertSplit returns q with p inserted as a vertex and the index of p.
// It searches from the start, or from the end when fromEnd is set.
func insertSplit(q model.Polyline, p gp, fromEnd bool) (model.Polyline, int, bool) {
	n := len(q)
	for k := 0; k < n; k++ {
		i := k
		if fromEnd {
			i = n - 1 - k
		}
		if q[i] == p {
			return q, i, true
		}
		switch {
		case !fromEnd && i+1 < n && onSegment(p, q[i], q[i+1]):
			if q[i+1] == p {
				return q, i + 1, true
			}
			return insertAt(q, i+1, p), i + 1, true
		case fromEnd && i > 0 && onSegment(p, q[i-1], q[i]):
			if q[i-1] == p {
				return q, i - 1, true
			}
			return insertAt(q, i, p), i, true
		}
	}
	return q, -1, false
}

func insertAt(q model.Polyline, i int, p gp) model.Polyline {
	out := make(model.Polyline, 0, len(q)+1)
	out = append(out, q[:i]...)
	out = append(out, p)
	return append(out, q[i:]...)
}

// trimLeading drops leading points of pl while the edge after them still
// runs along the far line, so the remainder starts where pl leaves it.
func trimLeading(pl model.Polyline, onLine func(gp) bool) model.Polyline {
	s := 0
	for s+1 < len(pl) && onLine(pl[s]) && onLine(pl[s+1]) {
		s++
	}
	return pl[s:]
}

// centerRuns splits the re-closed center into runs lying off the far line,
// each closed by its on-line neighbor on both sides.
func centerRuns(closed model.Polyline, onLine func(gp) bool) []model.Polyline {
	var runs []model.Polyline
	start := -1
	for i := 1; i < len(closed); i++ {
		if !onLine(closed[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if run := clone(closed[start-1 : i+1]); len(run) >= 3 {
				runs = append(runs, run)
			}
			start = -1
		}
	}
	return runs
}

func containsPoint(pts []gp, p gp) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}

func distance(a, b gp) int {
	d := b.Sub(a)
	return max(d.X, -d.X) + max(d.Y, -d.Y)
}

func clone(pl model.Polyline) model.Polyline {
	out := make(model.Polyline, len(pl))
	copy(out, pl)
	return out
}
