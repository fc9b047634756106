package engine

import (
	"math/rand/v2"

	"github.com/piwi3910/BoxPleat/internal/model"
)

func defaultTestSettings() model.Settings {
	return model.DefaultSettings()
}

// footprint builds a footprint from grid coordinates at pitch 20.
func footprint(coords ...int) []model.Point {
	pts := make([]model.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, model.Point{X: float64(coords[i]) * 20, Y: float64(coords[i+1]) * 20})
	}
	return pts
}

func poly(coords ...int) model.Polyline {
	pl := make(model.Polyline, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pl = append(pl, model.GridPoint{X: coords[i], Y: coords[i+1]})
	}
	return pl
}

func pt(x, y int) model.GridPoint { return model.GridPoint{X: x, Y: y} }

var (
	hexagonL  = footprint(0, 0, 2, 0, 2, 1, 1, 1, 1, 2, 0, 2)
	plusShape = footprint(1, 0, 2, 0, 2, 1, 3, 1, 3, 2, 2, 2, 2, 3, 1, 3, 1, 2, 0, 2, 0, 1, 1, 1)
	uShape    = footprint(0, 0, 3, 0, 3, 2, 2, 2, 2, 1, 1, 1, 1, 2, 0, 2)
	staircase = footprint(0, 0, 3, 0, 3, 1, 2, 1, 2, 2, 1, 2, 1, 3, 0, 3)
	// wShape has a notch in its top edge with a bump rising from the notch floor.
	wShape = footprint(0, 0, 5, 0, 5, 3, 4, 3, 4, 1, 3, 1, 3, 2, 2, 2, 2, 1, 1, 1, 1, 3, 0, 3)
)

// irregular footprints exercise the less regular split paths: a far edge
// that meets nothing past the near corner, inset corners capped by a short
// first or last edge, a trimmed right part, collisions and center runs.
var irregular = map[string][]model.Point{
	"near-is-far":   footprint(3, 4, 0, 4, 0, 0, 2, 0, 2, 1, 1, 1, 1, 3, 3, 3),
	"short-first":   footprint(3, 2, 2, 2, 2, 1, 1, 1, 1, 3, 0, 3, 0, 0, 3, 0),
	"short-last":    footprint(4, 5, 0, 5, 0, 0, 1, 0, 1, 2, 3, 2, 3, 1, 2, 1, 2, 0, 4, 0),
	"collision":     footprint(1, 2, 2, 2, 2, 1, 3, 1, 3, 0, 5, 0, 5, 2, 4, 2, 4, 3, 1, 3),
	"trimmed-right": footprint(0, 1, 1, 1, 1, 2, 2, 2, 2, 0, 3, 0, 3, 3, 2, 3, 2, 5, 0, 5),
	"nested-center": footprint(0, 0, 2, 0, 2, 1, 3, 1, 3, 0, 4, 0, 4, 2, 2, 2, 2, 3, 3, 3, 3, 5, 0, 5, 0, 3, 1, 3, 1, 2, 0, 2),
}

// columns builds a random footprint from n unit-wide columns. Each column
// spans [lo, hi] with lo < 4 <= hi, so neighbors always overlap and the
// outline stays simple.
func columns(rng *rand.Rand, n int) []model.Point {
	raw := make([]model.GridPoint, 0, 4*n)
	lo, hi := make([]int, n), make([]int, n)
	for i := range n {
		lo[i], hi[i] = rng.IntN(4), 4+rng.IntN(4)
		raw = append(raw, pt(i, lo[i]), pt(i+1, lo[i]))
	}
	for i := n - 1; i >= 0; i-- {
		raw = append(raw, pt(i+1, hi[i]), pt(i, hi[i]))
	}

	var dedup []model.GridPoint
	for i, p := range raw {
		if p != raw[(i+1)%len(raw)] {
			dedup = append(dedup, p)
		}
	}
	var coords []int
	for i, p := range dedup {
		prev, next := dedup[(i+len(dedup)-1)%len(dedup)], dedup[(i+1)%len(dedup)]
		if prev.Sub(p).Cross(next.Sub(p)) != 0 {
			coords = append(coords, p.X, p.Y)
		}
	}
	return footprint(coords...)
}
