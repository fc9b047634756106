package engine

import (
	"cmp"
	"slices"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// lineSides returns the low and high budget sides of a line's axis.
func lineSides(l model.OrthogonalLine) (low, high model.Side) {
	if l.Axis == model.AxisX {
		return model.SideLeft, model.SideRight
	}
	return model.SideBottom, model.SideTop
}

func compareLines(a, b model.OrthogonalLine) int {
	return cmp.Or(cmp.Compare(a.Axis, b.Axis), cmp.Compare(a.Coord, b.Coord))
}

func compareSegments(a, b model.GridSegment) int {
	return cmp.Or(
		cmp.Compare(a.Start.X, b.Start.X), cmp.Compare(a.Start.Y, b.Start.Y),
		cmp.Compare(a.End.X, b.End.X), cmp.Compare(a.End.Y, b.End.Y))
}

// Resolve reconciles consolidated demands into one allocation per segment
// that is consistent along each grid line. Lines come out x-lines first,
// then by coordinate, then by segment.
func Resolve(demands []model.DividingDemand, poly Polygon) []model.ResolvedAllocation {
	bySegment := map[model.GridSegment][]model.DividingDemand{}
	byLine := map[model.OrthogonalLine][]model.GridSegment{}
	for _, d := range demands {
		if _, ok := bySegment[d.Segment]; !ok {
			l := d.Segment.Line()
			byLine[l] = append(byLine[l], d.Segment)
		}
		bySegment[d.Segment] = append(bySegment[d.Segment], d)
	}

	lines := make([]model.OrthogonalLine, 0, len(byLine))
	for l := range byLine {
		lines = append(lines, l)
	}
	slices.SortFunc(lines, compareLines)

	var out []model.ResolvedAllocation
	for _, line := range lines {
		segs := byLine[line]
		slices.SortFunc(segs, compareSegments)
		out = append(out, resolveLine(line, segs, bySegment, poly)...)
	}
	return out
}

func resolveLine(line model.OrthogonalLine, segs []model.GridSegment, bySegment map[model.GridSegment][]model.DividingDemand, poly Polygon) []model.ResolvedAllocation {
	low, high := lineSides(line)

	segBudgets := make([]model.Budgets, len(segs))
	var lineMax model.Budgets
	for i, seg := range segs {
		segBudgets[i] = segmentBudget(seg, bySegment[seg], poly, low, high)
		lineMax = lineMax.Max(segBudgets[i])
	}

	envelope := lineMax.Horizontal() + lineMax.Vertical()
	collision := lineMax.Left+lineMax.Right+lineMax.Top+lineMax.Bottom > envelope
	dominant, other := low, high
	if lineMax.Get(high) > lineMax.Get(low) {
		dominant, other = high, low
	}
	if collision {
		Logger().Warn("opposing demands collide on line",
			"line", line.String(), "dominant", dominant.String(), "envelope", envelope)
	}

	out := make([]model.ResolvedAllocation, len(segs))
	for i, seg := range segs {
		var b model.Budgets
		if collision {
			keep := segBudgets[i].Get(dominant)
			b.Set(dominant, keep)
			b.Set(other, max(0, envelope-keep))
		} else {
			b.Set(low, lineMax.Get(low))
			b.Set(high, lineMax.Get(high))
		}
		out[i] = model.ResolvedAllocation{
			Line:       line,
			Segment:    seg,
			Budgets:    b,
			Horizontal: b.Horizontal(),
			Vertical:   b.Vertical(),
			Collision:  collision,
		}
	}
	return out
}

// segmentBudget takes the larger endpoint budget per side. Tagged endpoints
// reuse the demand that tagged them; others get the whole envelope on their
// exterior side.
func segmentBudget(seg model.GridSegment, records []model.DividingDemand, poly Polygon, low, high model.Side) model.Budgets {
	envelope := 0
	for _, r := range records {
		envelope = max(envelope, r.Budgets.Get(low), r.Budgets.Get(high))
	}

	var merged model.Budgets
	for _, end := range []model.GridPoint{seg.Start, seg.End} {
		var b model.Budgets
		tagged := false
		for _, r := range records {
			if slices.Contains(r.Tagged, end) {
				b = b.Max(r.Budgets)
				tagged = true
			}
		}
		if !tagged {
			b.Set(exteriorSide(end, seg, poly), envelope)
		}
		merged = merged.Max(b)
	}

	var out model.Budgets
	out.Set(low, merged.Get(low))
	out.Set(high, merged.Get(high))
	return out
}

// exteriorSide decides which side of seg lies outside the footprint at the
// vertex end, from the turn direction and the neighbor off the segment.
func exteriorSide(end model.GridPoint, seg model.GridSegment, poly Polygon) model.Side {
	i := poly.indexOf(end)
	dir := unit(seg.End.Sub(seg.Start))
	if i < 0 {
		return sideOf(rightNormal(dir))
	}
	r := ring[model.GridPoint](poly.Vertices)
	prev, next := r.prev(i), r.next(i)
	other := next
	if onSegment(next, seg.Start, seg.End) {
		other = prev
	}
	toward := unit(other.Sub(end))
	if toward.Dot(dir) != 0 {
		return sideOf(rightNormal(dir))
	}
	if leftTurn(prev, end, next) {
		return sideOf(toward.Scale(-1))
	}
	return sideOf(toward)
}
