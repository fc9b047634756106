package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// Polygon is a footprint in canonical form: grid units, counter-clockwise,
// translated so the minimum corner is (0,0), starting at the vertex with the
// largest x (ties broken by largest y).
type Polygon struct {
	Vertices []model.GridPoint
	Origin   model.Point // footprint coordinate of grid (0,0)
	Pitch    float64
	Width    int
	Height   int
}

// Footprint converts the canonical polygon back to footprint units without
// re-applying the origin.
func (p Polygon) Footprint() model.Footprint {
	fp := make(model.Footprint, len(p.Vertices))
	for i, v := range p.Vertices {
		fp[i] = v.ToPoint(p.Pitch)
	}
	return fp
}

// ToFootprint maps a grid point to footprint coordinates including the origin.
func (p Polygon) ToFootprint(v model.GridPoint) model.Point {
	return model.Point{X: float64(v.X)*p.Pitch + p.Origin.X, Y: float64(v.Y)*p.Pitch + p.Origin.Y}
}

func (p Polygon) touchesBounds(v model.GridPoint) bool {
	return v.X == 0 || v.X == p.Width || v.Y == 0 || v.Y == p.Height
}

func (p Polygon) indexOf(v model.GridPoint) int {
	for i, w := range p.Vertices {
		if w == v {
			return i
		}
	}
	return -1
}

// Preprocess validates and canonicalizes an input footprint.
func Preprocess(points []model.Point, settings model.Settings) (Polygon, error) {
	if err := settings.Validate(); err != nil {
		return Polygon{}, stageErr(StagePreprocess, nil, err)
	}

	grid := make([]model.GridPoint, 0, len(points))
	for _, p := range points {
		g, err := toGrid(p, settings)
		if err != nil {
			return Polygon{}, stageErr(StagePreprocess, p, err)
		}
		grid = append(grid, g)
	}

	grid = dropDuplicates(grid)
	if len(grid) < 3 {
		return Polygon{}, stageErr(StagePreprocess, model.Polyline(grid), ErrDegenerateInput)
	}

	r := ring[model.GridPoint](grid)
	for i := range r {
		if !axisAligned(r.at(i), r.next(i)) {
			edge := model.GridSegment{Start: r.at(i), End: r.next(i)}
			return Polygon{}, stageErr(StagePreprocess, edge, ErrOrthogonalityViolation)
		}
	}

	grid = dropCollinear(grid)
	if len(grid) < 3 {
		return Polygon{}, stageErr(StagePreprocess, model.Polyline(grid), ErrDegenerateInput)
	}

	area2 := 0
	r = ring[model.GridPoint](grid)
	for i := range r {
		area2 += r.at(i).Cross(r.next(i))
	}
	if area2 == 0 {
		return Polygon{}, stageErr(StagePreprocess, model.Polyline(grid), ErrDegenerateInput)
	}
	if area2 < 0 {
		for i, j := 0, len(grid)-1; i < j; i, j = i+1, j-1 {
			grid[i], grid[j] = grid[j], grid[i]
		}
	}

	minX, minY := grid[0].X, grid[0].Y
	for _, v := range grid {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
	}
	start := 0
	width, height := 0, 0
	for i := range grid {
		grid[i].X -= minX
		grid[i].Y -= minY
		width = max(width, grid[i].X)
		height = max(height, grid[i].Y)
		v, s := grid[i], grid[start]
		if v.X > s.X || (v.X == s.X && v.Y > s.Y) {
			start = i
		}
	}

	poly := Polygon{
		Vertices: ring[model.GridPoint](grid).rotate(start),
		Origin:   model.Point{X: float64(minX) * settings.Pitch, Y: float64(minY) * settings.Pitch},
		Pitch:    settings.Pitch,
		Width:    width,
		Height:   height,
	}
	Logger().Debug("preprocessed footprint",
		"vertices", len(poly.Vertices), "width", width, "height", height, "reversed", area2 < 0)
	return poly, nil
}

func toGrid(p model.Point, settings model.Settings) (model.GridPoint, error) {
	gx := math.Round(p.X / settings.Pitch)
	gy := math.Round(p.Y / settings.Pitch)
	if math.Abs(gx*settings.Pitch-p.X) > settings.Epsilon || math.Abs(gy*settings.Pitch-p.Y) > settings.Epsilon {
		return model.GridPoint{}, fmt.Errorf("%w: pitch %g", ErrOffGrid, settings.Pitch)
	}
	return model.GridPoint{X: int(gx), Y: int(gy)}, nil
}

// dropDuplicates removes consecutive repeats including a closing vertex
// equal to the first one.
func dropDuplicates(pts []model.GridPoint) []model.GridPoint {
	out := make([]model.GridPoint, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// dropCollinear removes vertices whose two edges run along the same line.
func dropCollinear(pts []model.GridPoint) []model.GridPoint {
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		r := ring[model.GridPoint](pts)
		for i := range r {
			if r.at(i).Sub(r.prev(i)).Cross(r.next(i).Sub(r.at(i))) == 0 {
				pts = append(pts[:i:i], pts[i+1:]...)
				changed = true
				break
			}
		}
	}
	return pts
}
