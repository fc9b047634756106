package engine

import (
	"fmt"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the synthesis result and summary figures for one scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Result      model.Result
	Err         error
	FoldCount   int
	PaperWidth  float64
	PaperHeight float64
	Collisions  int
}

// CompareScenarios runs the synthesizer for each scenario on the same
// footprint and returns the results in scenario order. A failing scenario
// carries its error instead of a result.
func CompareScenarios(scenarios []ComparisonScenario, footprint []model.Point) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings).Compute(footprint)
		cr := ComparisonResult{Scenario: scenario, Err: err}
		if err == nil {
			cr.Result = result
			cr.FoldCount = result.FoldCount()
			cr.PaperWidth, cr.PaperHeight = result.PaperSize()
			cr.Collisions = result.Collisions()
		}
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around the current settings.
func BuildDefaultScenarios(baseSettings model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// A footprint on the grid stays on the grid at half the pitch.
	halfPitch := baseSettings
	halfPitch.Pitch = baseSettings.Pitch / 2
	if halfPitch.Epsilon < halfPitch.Pitch/2 {
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Pitch %g (half)", halfPitch.Pitch),
			Settings: halfPitch,
		})
	}

	deeper := baseSettings
	deeper.MaxIterations = baseSettings.MaxIterations * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Iteration ceiling %d", deeper.MaxIterations),
		Settings: deeper,
	})

	if baseSettings.MaxIterations > 1 {
		tight := baseSettings
		tight.MaxIterations = baseSettings.MaxIterations / 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Iteration ceiling %d", tight.MaxIterations),
			Settings: tight,
		})
	}

	return scenarios
}
