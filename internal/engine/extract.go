package engine

import "github.com/piwi3910/BoxPleat/internal/model"

// ExtractConcaveParts returns every maximal run of vertices lying strictly
// inside the bounding rectangle, extended by one boundary-touching vertex on
// each side. A polygon equal to its bounding rectangle yields no parts.
func ExtractConcaveParts(poly Polygon) []model.Polyline {
	r := ring[model.GridPoint](poly.Vertices)
	first := -1
	for i, v := range r {
		if poly.touchesBounds(v) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}

	// Walking from a touching vertex means a run never straddles the start,
	// so runs that wrap past the last index come out whole.
	var parts []model.Polyline
	runStart := -1
	for k := 1; k <= len(r); k++ {
		i := first + k
		if !poly.touchesBounds(r.at(i)) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			parts = append(parts, model.Polyline(r.span(runStart-1, i)))
			runStart = -1
		}
	}
	Logger().Debug("extracted concave parts", "count", len(parts))
	return parts
}
