// Package export writes synthesized crease patterns to SVG, PNG, PDF, DXF
// and XLSX.
package export

import (
	"errors"

	"github.com/jbeda/geom"
	"github.com/piwi3910/BoxPleat/internal/model"
)

// ErrEmptyResult is returned when a result has no paper outline to draw.
var ErrEmptyResult = errors.New("result has no paper outline")

// frame maps footprint coordinates onto a y-down drawing surface.
type frame struct {
	bounds geom.Rect
	scale  float64
	margin float64
}

func newFrame(r model.Result, scale, margin float64) (frame, error) {
	if len(r.Paper) == 0 {
		return frame{}, ErrEmptyResult
	}
	min, max := r.Paper.BoundingBox()
	b := geom.Rect{Min: geom.Coord{X: min.X, Y: min.Y}, Max: geom.Coord{X: min.X, Y: min.Y}}
	b.ExpandToContainCoord(geom.Coord{X: max.X, Y: max.Y})
	return frame{bounds: b, scale: scale, margin: margin}, nil
}

// Width and Height are the drawing size including margins.
func (f frame) Width() float64  { return f.bounds.Width()*f.scale + 2*f.margin }
func (f frame) Height() float64 { return f.bounds.Height()*f.scale + 2*f.margin }

func (f frame) at(p model.Point) geom.Coord {
	return geom.Coord{
		X: (p.X-f.bounds.Min.X)*f.scale + f.margin,
		Y: (f.bounds.Max.Y-p.Y)*f.scale + f.margin,
	}
}

// dashes splits a segment into dash runs of the given on/off length,
// measured in drawing units.
func dashes(a, b geom.Coord, on, off float64) [][2]geom.Coord {
	d := b.Minus(a)
	length := d.Magnitude()
	if length == 0 || on <= 0 {
		return [][2]geom.Coord{{a, b}}
	}
	u := d.Unit()
	var out [][2]geom.Coord
	for t := 0.0; t < length; t += on + off {
		end := min(t+on, length)
		out = append(out, [2]geom.Coord{a.Plus(u.Times(t)), a.Plus(u.Times(end))})
	}
	return out
}
