package engine

import (
	"slices"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// LocalDemands derives the spacing each three-part node asks for and
// attributes it to the footprint edges it runs along.
func LocalDemands(nodes []model.ThreePart, poly Polygon) []model.DividingDemand {
	var out []model.DividingDemand
	for _, node := range nodes {
		for _, part := range []model.Polyline{node.Left, node.Right} {
			out = append(out, partDemands(part, node.Shift, poly)...)
		}
	}
	return out
}

// partDemand is length plus one unit per left turn plus one unit when the
// closing edge runs along the shift.
func partDemand(part model.Polyline, shift model.Shift) int {
	if len(part) < 2 {
		return 0
	}
	demand := part.Len()
	for i := 1; i+1 < len(part); i++ {
		if leftTurn(part[i-1], part[i], part[i+1]) {
			demand++
		}
	}
	last := part[len(part)-1].Sub(part[len(part)-2])
	if last.Cross(shift.Vec()) == 0 {
		demand++
	}
	return demand
}

func partDemands(part model.Polyline, shift model.Shift, poly Polygon) []model.DividingDemand {
	demand := partDemand(part, shift)
	if demand == 0 {
		return nil
	}
	far := part.Last()
	r := ring[model.GridPoint](poly.Vertices)
	var out []model.DividingDemand
	for i := range r {
		a, b := r.at(i), r.next(i)
		if !onSegment(far, a, b) || !overlapsPolyline(a, b, part) {
			continue
		}
		var budgets model.Budgets
		budgets.Set(sideOf(rightNormal(unit(b.Sub(a)))), demand)
		out = append(out, newDemand(model.GridSegment{Start: a, End: b}.Canonical(), budgets, clone(part), []model.GridPoint{far}))
	}
	return out
}

func overlapsPolyline(a, b model.GridPoint, pl model.Polyline) bool {
	for i := 0; i+1 < len(pl); i++ {
		if overlap, _ := contact(a, b, pl[i], pl[i+1]); overlap {
			return true
		}
	}
	return false
}

func newDemand(seg model.GridSegment, b model.Budgets, origin model.Polyline, tagged []model.GridPoint) model.DividingDemand {
	return model.DividingDemand{
		Segment:    seg,
		Budgets:    b,
		Horizontal: b.Horizontal(),
		Vertical:   b.Vertical(),
		Origin:     origin,
		Tagged:     tagged,
	}
}

// Consolidate merges demands on the same segment whose originating
// polylines share an endpoint, transitively, summing their budgets.
func Consolidate(demands []model.DividingDemand) []model.DividingDemand {
	var order []model.GridSegment
	groups := map[model.GridSegment][]model.DividingDemand{}
	for _, d := range demands {
		if _, ok := groups[d.Segment]; !ok {
			order = append(order, d.Segment)
		}
		groups[d.Segment] = append(groups[d.Segment], d)
	}

	var out []model.DividingDemand
	for _, seg := range order {
		group := groups[seg]
		uf := newUnionFind(len(group))
		for i := range group {
			for j := i + 1; j < len(group); j++ {
				if shareEndpoint(group[i].Origin, group[j].Origin) {
					uf.union(i, j)
				}
			}
		}
		merged := map[int]int{}
		var sets []model.DividingDemand
		for i, d := range group {
			root := uf.find(i)
			k, ok := merged[root]
			if !ok {
				merged[root] = len(sets)
				sets = append(sets, newDemand(seg, d.Budgets, clone(d.Origin), slices.Clone(d.Tagged)))
				continue
			}
			sets[k] = mergeDemand(sets[k], d)
		}
		out = append(out, sets...)
	}
	Logger().Debug("consolidated demands", "in", len(demands), "out", len(out))
	return out
}

func mergeDemand(into, d model.DividingDemand) model.DividingDemand {
	tagged := slices.Clone(into.Tagged)
	for _, p := range d.Tagged {
		if !slices.Contains(tagged, p) {
			tagged = append(tagged, p)
		}
	}
	return newDemand(into.Segment, into.Budgets.Plus(d.Budgets), joinPolylines(into.Origin, d.Origin), tagged)
}

func shareEndpoint(a, b model.Polyline) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return a.First() == b.First() || a.First() == b.Last() || a.Last() == b.First() || a.Last() == b.Last()
}

// joinPolylines connects two polylines at a shared endpoint. Polylines that
// do not meet are simply concatenated.
func joinPolylines(a, b model.Polyline) model.Polyline {
	out := clone(a)
	switch {
	case len(a) == 0:
		return clone(b)
	case len(b) == 0:
	case a.Last() == b.First():
		out = append(out, b[1:]...)
	case a.First() == b.Last():
		out = append(clone(b[:len(b)-1]), a...)
	case a.Last() == b.Last():
		rev := slices.Clone(b[:len(b)-1])
		slices.Reverse(rev)
		out = append(out, rev...)
	case a.First() == b.First():
		rev := slices.Clone(b[1:])
		slices.Reverse(rev)
		out = append(rev, a...)
	default:
		out = append(out, b...)
	}
	return out
}

type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri != rj {
		u.parent[max(ri, rj)] = min(ri, rj)
	}
}
