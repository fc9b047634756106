package engine

import (
	"github.com/piwi3910/BoxPleat/internal/model"
)

// Synthesizer runs the box-pleating pipeline.
type Synthesizer struct {
	Settings model.Settings
}

func New(settings model.Settings) *Synthesizer {
	return &Synthesizer{Settings: settings}
}

// Compute synthesizes the crease pattern and stretched paper for a closed
// rectilinear footprint. The result is a pure function of the footprint and
// the settings; any stage failure aborts the run with a *StageError.
func (s *Synthesizer) Compute(footprint []model.Point) (model.Result, error) {
	poly, err := Preprocess(footprint, s.Settings)
	if err != nil {
		return model.Result{}, err
	}

	parts := ExtractConcaveParts(poly)
	nodes, err := Decompose(parts, s.Settings)
	if err != nil {
		return model.Result{}, err
	}
	demands := Consolidate(LocalDemands(nodes, poly))
	allocs := Resolve(demands, poly)
	paper, crease := Generate(allocs, poly, s.Settings)

	result := model.NewResult(s.Settings.Pitch)
	result.Paper = paper
	result.Crease = crease
	result.Parts = parts
	result.ThreeParts = nodes
	result.Demands = demands
	result.Allocations = allocs

	w, h := result.PaperSize()
	Logger().Info("synthesized crease pattern",
		"parts", len(parts), "nodes", len(nodes),
		"folds", result.FoldCount(), "collisions", result.Collisions(),
		"paper_w", w, "paper_h", h)
	return result, nil
}
