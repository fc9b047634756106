// Package sketch models interactive footprint capture: grid-snapped point
// entry with undo and redo, and the closure and simplicity checks run
// before a footprint is handed to the synthesizer.
package sketch

import (
	"math"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// Sketch is a footprint being drawn point by point.
type Sketch struct {
	pitch   float64
	points  []model.Point
	history *History
}

// New creates an empty sketch snapping to the given pitch.
func New(pitch float64) *Sketch {
	return &Sketch{pitch: pitch, history: NewHistory()}
}

// SnapPoint rounds p to the nearest grid intersection.
func SnapPoint(p model.Point, pitch float64) model.Point {
	return model.Point{
		X: math.Round(p.X/pitch) * pitch,
		Y: math.Round(p.Y/pitch) * pitch,
	}
}

// Snap rounds every point to the grid.
func Snap(points []model.Point, pitch float64) []model.Point {
	out := make([]model.Point, len(points))
	for i, p := range points {
		out[i] = SnapPoint(p, pitch)
	}
	return out
}

// Add snaps p and appends it. A point equal to the last one is ignored and
// Add reports false.
func (s *Sketch) Add(x, y float64) bool {
	p := SnapPoint(model.Point{X: x, Y: y}, s.pitch)
	if n := len(s.points); n > 0 && s.points[n-1] == p {
		return false
	}
	s.history.Push(MakeSnapshot(s.points, "Add Point"))
	s.points = append(s.points, p)
	return true
}

// Close appends the first point again when the sketch is not yet closed.
func (s *Sketch) Close() bool {
	if len(s.points) < 3 || s.Closed() {
		return false
	}
	first := s.points[0]
	return s.Add(first.X, first.Y)
}

func (s *Sketch) Undo() bool {
	prev, ok := s.history.Undo(MakeSnapshot(s.points, "Undo"))
	if ok {
		s.points = prev.Points
	}
	return ok
}

func (s *Sketch) Redo() bool {
	next, ok := s.history.Redo(MakeSnapshot(s.points, "Redo"))
	if ok {
		s.points = next.Points
	}
	return ok
}

// Clear removes all points. It can be undone.
func (s *Sketch) Clear() {
	if len(s.points) == 0 {
		return
	}
	s.history.Push(MakeSnapshot(s.points, "Clear"))
	s.points = nil
}

// Points returns a copy of the drawn points.
func (s *Sketch) Points() []model.Point {
	return MakeSnapshot(s.points, "").Points
}

// Closed reports whether the last point returns to the first.
func (s *Sketch) Closed() bool {
	return isClosed(s.points)
}

// Footprint validates the sketch and returns it without the closing point.
func (s *Sketch) Footprint() (model.Footprint, error) {
	if err := Validate(s.points); err != nil {
		return nil, err
	}
	return model.Footprint(s.points[:len(s.points)-1]), nil
}
