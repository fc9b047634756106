package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/BoxPleat/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point
	end   model.Point
}

// ImportDXF imports footprints from a DXF file. Each LWPOLYLINE and each
// closed chain of LINE entities becomes a footprint. Curved geometry has no
// place on a box-pleating grid and is skipped with a warning.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Footprint
	var segments []segment
	curved := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline, bulged := lwPolylineToFootprint(e)
			if bulged {
				result.Warnings = append(result.Warnings, "Ignored arc bulges on LWPOLYLINE")
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point{X: e.End[0], Y: e.End[1]},
			})

		case *entity.Circle, *entity.Arc:
			curved++
		}
	}
	if curved > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d curved entities", curved))
	}

	for _, co := range chainSegments(segments, 0.01) {
		if len(co) >= 3 {
			outlines = append(outlines, co)
		}
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, outline := range outlines {
		normalized := normalizeOutline(outline)
		min, max := normalized.BoundingBox()
		width := max.X - min.X
		height := max.Y - min.Y

		if width < 0.01 || height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", width, height))
			continue
		}

		result.Footprints = append(result.Footprints, ImportedFootprint{
			Name:   fmt.Sprintf("DXF Footprint %d", i+1),
			Points: normalized,
		})
	}

	return result
}

// lwPolylineToFootprint reads polyline vertices and reports whether any
// vertex carried an arc bulge.
func lwPolylineToFootprint(lw *entity.LwPolyline) (model.Footprint, bool) {
	outline := make(model.Footprint, 0, len(lw.Vertices))
	bulged := false
	for i, v := range lw.Vertices {
		if i < len(lw.Bulges) && math.Abs(lw.Bulges[i]) > 1e-9 {
			bulged = true
		}
		outline = append(outline, model.Point{X: v[0], Y: v[1]})
	}
	return closeFootprint(outline), bulged
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) []model.Footprint {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []model.Footprint

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Open chains are not footprints.
		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		outlines = append(outlines, model.Footprint(chain[:len(chain)-1]))
	}

	// Largest first for consistent ordering.
	sort.Slice(outlines, func(i, j int) bool {
		return math.Abs(outlines[i].Area()) > math.Abs(outlines[j].Area())
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// normalizeOutline translates the outline so its bounding box starts at (0, 0).
func normalizeOutline(o model.Footprint) model.Footprint {
	if len(o) == 0 {
		return o
	}
	min, _ := o.BoundingBox()
	return o.Translate(-min.X, -min.Y)
}
