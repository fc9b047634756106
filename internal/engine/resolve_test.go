package engine

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/piwi3910/BoxPleat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, fp []model.Point) []model.ResolvedAllocation {
	t.Helper()
	p, err := Preprocess(fp, defaultTestSettings())
	require.NoError(t, err)
	nodes, err := Decompose(ExtractConcaveParts(p), defaultTestSettings())
	require.NoError(t, err)
	return Resolve(Consolidate(LocalDemands(nodes, p)), p)
}

func TestResolve_Hexagon(t *testing.T) {
	allocs := resolve(t, hexagonL)
	require.Len(t, allocs, 1)

	a := allocs[0]
	assert.Equal(t, model.OrthogonalLine{Axis: model.AxisY, Coord: 1}, a.Line)
	assert.Equal(t, model.Budgets{Top: 2}, a.Budgets)
	assert.False(t, a.Collision)
	assert.Equal(t, 2, a.Total())
}

func TestResolve_PlusIsCollisionFree(t *testing.T) {
	allocs := resolve(t, plusShape)
	require.Len(t, allocs, 4)

	wantLines := []model.OrthogonalLine{
		{Axis: model.AxisX, Coord: 1},
		{Axis: model.AxisX, Coord: 2},
		{Axis: model.AxisY, Coord: 1},
		{Axis: model.AxisY, Coord: 2},
	}
	wantBudgets := []model.Budgets{{Left: 2}, {Right: 2}, {Bottom: 2}, {Top: 2}}
	for i, a := range allocs {
		assert.Equal(t, wantLines[i], a.Line)
		assert.Equal(t, wantBudgets[i], a.Budgets)
		assert.False(t, a.Collision)
	}
}

func TestResolve_UntaggedEndpointSides(t *testing.T) {
	// In the U notch both walls are tagged at the floor; the top ends are
	// inferred, one at a convex corner and one at a reflex corner.
	allocs := resolve(t, uShape)
	require.Len(t, allocs, 2)
	assert.Equal(t, model.Budgets{Right: 2}, allocs[0].Budgets)
	assert.Equal(t, model.Budgets{Left: 2}, allocs[1].Budgets)
}

func TestResolve_CollisionUsesComplement(t *testing.T) {
	a := model.GridSegment{Start: pt(0, 1), End: pt(1, 1)}
	b := model.GridSegment{Start: pt(2, 1), End: pt(3, 1)}
	demands := []model.DividingDemand{
		newDemand(a, model.Budgets{Top: 2}, poly(0, 1, 1, 1), []model.GridPoint{pt(0, 1), pt(1, 1)}),
		newDemand(b, model.Budgets{Bottom: 3}, poly(2, 1, 3, 1), []model.GridPoint{pt(2, 1), pt(3, 1)}),
	}

	allocs := Resolve(demands, Polygon{})
	require.Len(t, allocs, 2)
	for _, al := range allocs {
		assert.True(t, al.Collision)
		assert.Equal(t, 3, al.Budgets.Top+al.Budgets.Bottom, "pair must fill the envelope")
	}
	assert.Equal(t, model.Budgets{Top: 3}, allocs[0].Budgets)
	assert.Equal(t, model.Budgets{Bottom: 3}, allocs[1].Budgets)
}

func TestResolve_NormalizesAlongLine(t *testing.T) {
	a := model.GridSegment{Start: pt(1, 0), End: pt(1, 1)}
	b := model.GridSegment{Start: pt(1, 2), End: pt(1, 4)}
	demands := []model.DividingDemand{
		newDemand(a, model.Budgets{Left: 1}, poly(1, 0, 1, 1), []model.GridPoint{pt(1, 0), pt(1, 1)}),
		newDemand(b, model.Budgets{Left: 4}, poly(1, 2, 1, 4), []model.GridPoint{pt(1, 2), pt(1, 4)}),
	}

	allocs := Resolve(demands, Polygon{})
	require.Len(t, allocs, 2)
	for _, al := range allocs {
		assert.False(t, al.Collision)
		assert.Equal(t, model.Budgets{Left: 4}, al.Budgets)
		assert.Equal(t, 4, al.Vertical)
	}
}

func TestResolve_Invariants(t *testing.T) {
	shapes := map[string][]model.Point{
		"hexagon": hexagonL, "plus": plusShape, "u": uShape, "stairs": staircase, "w": wShape,
	}
	for name, fp := range irregular {
		shapes[name] = fp
	}
	rng := rand.New(rand.NewPCG(3, 5))
	for i := range 50 {
		shapes[fmt.Sprintf("columns-%d", i)] = columns(rng, 2+rng.IntN(8))
	}

	for name, fp := range shapes {
		t.Run(name, func(t *testing.T) {
			assertAllocationInvariants(t, resolve(t, fp))
		})
	}
}

// assertAllocationInvariants checks that budgets are non-negative and that a
// line without a collision has one budget whose total is the line's envelope.
func assertAllocationInvariants(t *testing.T, allocs []model.ResolvedAllocation) {
	t.Helper()
	perLine := map[model.OrthogonalLine]model.Budgets{}
	envelope := map[model.OrthogonalLine]int{}
	for _, a := range allocs {
		b := a.Budgets
		assert.GreaterOrEqual(t, b.Left, 0)
		assert.GreaterOrEqual(t, b.Right, 0)
		assert.GreaterOrEqual(t, b.Top, 0)
		assert.GreaterOrEqual(t, b.Bottom, 0)
		if a.Collision {
			continue
		}
		if prev, ok := perLine[a.Line]; ok {
			assert.Equal(t, prev, b, "line %v", a.Line)
		}
		perLine[a.Line] = b
		if a.Line.Axis == model.AxisX {
			envelope[a.Line] = max(envelope[a.Line], a.Vertical)
		} else {
			envelope[a.Line] = max(envelope[a.Line], a.Horizontal)
		}
	}
	for _, a := range allocs {
		if !a.Collision {
			assert.Equal(t, envelope[a.Line], a.Total(), "line %v", a.Line)
		}
	}
}
