package sketch

import (
	"errors"

	"github.com/piwi3910/BoxPleat/internal/model"
)

var (
	ErrNotClosed        = errors.New("polygon is not closed")
	ErrSelfIntersecting = errors.New("polygon intersects itself")
)

func isClosed(points []model.Point) bool {
	return len(points) >= 3 && points[0] == points[len(points)-1]
}

// Validate checks that a drawn point list is a closed simple polygon: the
// last point repeats the first and no two non-adjacent edges cross.
func Validate(points []model.Point) error {
	if !isClosed(points) {
		return ErrNotClosed
	}
	if selfIntersecting(points) {
		return ErrSelfIntersecting
	}
	return nil
}

// ValidateFootprint runs Validate on an implicitly closed footprint.
func ValidateFootprint(f model.Footprint) error {
	if len(f) == 0 {
		return ErrNotClosed
	}
	closed := append(append([]model.Point{}, f...), f[0])
	return Validate(closed)
}

type turn int

const (
	collinear turn = iota
	clockwise
	counterClockwise
)

func orientation(p, q, r model.Point) turn {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case v == 0:
		return collinear
	case v > 0:
		return clockwise
	}
	return counterClockwise
}

func segmentsCross(p1, p2, q1, q2 model.Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)
	return o1 != o2 && o3 != o4
}

func selfIntersecting(points []model.Point) bool {
	n := len(points)
	for i := 0; i < n-1; i++ {
		for j := i + 2; j < n-1; j++ {
			if i == 0 && j == n-2 {
				continue // first and last edges share the closing vertex
			}
			if segmentsCross(points[i], points[i+1], points[j], points[j+1]) {
				return true
			}
		}
	}
	return false
}
