package engine

import (
	"math"
	"slices"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// offsets turns per-line allocations into cumulative stretch along one axis.
type offsets struct {
	coords []int       // sorted line coordinates
	total  map[int]int // allocation inserted at each line
	low    map[int]int // part of it inserted before the line
}

func newOffsets() *offsets {
	return &offsets{total: map[int]int{}, low: map[int]int{}}
}

func (o *offsets) add(coord, low, total int) {
	if _, ok := o.total[coord]; !ok {
		o.coords = append(o.coords, coord)
	}
	o.total[coord] = max(o.total[coord], total)
	o.low[coord] = max(o.low[coord], low)
}

// at returns the stretch applied to coordinate v.
func (o *offsets) at(v int) int {
	off := 0
	for _, c := range o.coords {
		if c < v {
			off += o.total[c]
		}
	}
	return off + o.low[v]
}

func (o *offsets) sum() int {
	s := 0
	for _, c := range o.coords {
		s += o.total[c]
	}
	return s
}

// Generate converts resolved allocations into fold runs and the stretched
// paper outline, both in footprint coordinates.
func Generate(allocs []model.ResolvedAllocation, poly Polygon, settings model.Settings) (model.Footprint, model.CreasePattern) {
	xs, ys := newOffsets(), newOffsets()
	for _, a := range allocs {
		low, _ := lineSides(a.Line)
		if a.Line.Axis == model.AxisX {
			xs.add(a.Line.Coord, a.Budgets.Get(low), a.Total())
		} else {
			ys.add(a.Line.Coord, a.Budgets.Get(low), a.Total())
		}
	}
	slices.Sort(xs.coords)
	slices.Sort(ys.coords)

	shift := func(p model.GridPoint) model.GridPoint {
		return model.GridPoint{X: p.X + xs.at(p.X), Y: p.Y + ys.at(p.Y)}
	}

	var crease model.CreasePattern
	for _, a := range allocs {
		if a.Total() == 0 {
			continue
		}
		start := poly.ToFootprint(shift(a.Segment.Start))
		end := poly.ToFootprint(shift(a.Segment.End))
		emitRuns(&crease, start, end, settings)
	}

	w, h := poly.Width+xs.sum(), poly.Height+ys.sum()
	paper := model.Footprint{
		poly.ToFootprint(model.GridPoint{X: 0, Y: 0}),
		poly.ToFootprint(model.GridPoint{X: w, Y: 0}),
		poly.ToFootprint(model.GridPoint{X: w, Y: h}),
		poly.ToFootprint(model.GridPoint{X: 0, Y: h}),
	}
	Logger().Debug("generated crease pattern",
		"mountain", len(crease.Mountain), "valley", len(crease.Valley),
		"stretch_x", xs.sum(), "stretch_y", ys.sum())
	return paper, crease
}

// emitRuns cuts start-end into half-pitch runs alternating valley and
// mountain, starting with valley. A shorter last run keeps the remainder.
func emitRuns(crease *model.CreasePattern, start, end model.Point, settings model.Settings) {
	length := math.Hypot(end.X-start.X, end.Y-start.Y)
	if length <= settings.Epsilon {
		return
	}
	step := settings.Pitch / 2
	ux, uy := (end.X-start.X)/length, (end.Y-start.Y)/length
	at := func(t float64) model.Point {
		return model.Point{X: start.X + ux*t, Y: start.Y + uy*t}
	}
	valley := true
	for t := 0.0; length-t > settings.Epsilon; t += step {
		next := math.Min(t+step, length)
		if length-next <= settings.Epsilon {
			next = length
		}
		seg := model.LineSegment{Start: at(t), End: at(next)}
		if next == length {
			seg.End = end
		}
		if valley {
			crease.Valley = append(crease.Valley, seg)
		} else {
			crease.Mountain = append(crease.Mountain, seg)
		}
		valley = !valley
	}
}
