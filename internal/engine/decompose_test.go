package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/piwi3910/BoxPleat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decompose(t *testing.T, fp []model.Point) []model.ThreePart {
	t.Helper()
	nodes, err := Decompose(extract(t, fp), defaultTestSettings())
	require.NoError(t, err)
	return nodes
}

func TestDecompose_HexagonSingleNodeEmptyCenter(t *testing.T) {
	nodes := decompose(t, hexagonL)
	require.Len(t, nodes, 1)

	n := nodes[0]
	assert.Equal(t, model.Shift{DX: -1}, n.Shift)
	assert.Equal(t, poly(2, 1, 1, 1), n.Left)
	assert.Empty(t, n.Center)
	assert.Equal(t, poly(1, 2), n.Right)
	assert.Equal(t, 1, n.Depth)
}

func TestDecompose_ParallelEntrance(t *testing.T) {
	nodes := decompose(t, uShape)
	require.Len(t, nodes, 1)

	n := nodes[0]
	assert.Equal(t, model.Shift{DY: -1}, n.Shift)
	assert.Equal(t, poly(2, 2, 2, 1), n.Left)
	assert.Empty(t, n.Center)
	assert.Equal(t, poly(1, 1, 1, 2), n.Right)
}

func TestDecompose_RightPartRecurses(t *testing.T) {
	nodes := decompose(t, staircase)
	require.Len(t, nodes, 2)

	assert.Equal(t, poly(3, 1, 2, 1), nodes[0].Left)
	assert.Equal(t, poly(2, 2, 1, 2, 1, 3), nodes[0].Right)
	assert.Equal(t, poly(2, 2, 1, 2, 1, 3), nodes[1].Source)
	assert.Equal(t, poly(2, 2, 1, 2), nodes[1].Left)
	assert.Equal(t, poly(1, 3), nodes[1].Right)
}

func TestDecompose_CenterRunsTakeRotatedShift(t *testing.T) {
	nodes := decompose(t, wShape)
	require.Len(t, nodes, 3)

	root := nodes[0]
	assert.Equal(t, model.Shift{DY: -1}, root.Shift)
	assert.Equal(t, 1, root.Depth)
	assert.Equal(t, poly(4, 3, 4, 2), root.Left)
	assert.Equal(t, poly(4, 1, 3, 1, 3, 2, 2, 2, 2, 1, 1, 1), root.Center)
	assert.Equal(t, poly(1, 2, 1, 3), root.Right)

	// Each run is re-closed on the far line y=2 by its neighbors there.
	assert.Equal(t, poly(4, 2, 4, 1, 3, 1, 3, 2), nodes[1].Source)
	assert.Equal(t, poly(2, 2, 2, 1, 1, 1, 1, 2), nodes[2].Source)
	for _, n := range nodes[1:] {
		assert.Equal(t, root.Shift.Rotated(), n.Shift)
		assert.Empty(t, n.Center)
		assert.Len(t, n.Left, 2)
		assert.Len(t, n.Right, 2)
	}
}

func TestDecompose_NestedCenterRotatesOnce(t *testing.T) {
	nodes := decompose(t, irregular["nested-center"])
	require.Len(t, nodes, 4)

	root := nodes[0]
	assert.Equal(t, poly(4, 2, 2, 2, 2, 3, 3, 3, 3, 5), root.Source)
	assert.Equal(t, poly(2, 2, 2, 3, 3, 3), root.Center)
	assert.Equal(t, poly(3, 2, 2, 2, 2, 3, 3, 3), nodes[3].Source)
	assert.Equal(t, root.Shift.Rotated(), nodes[3].Shift)
}

func TestDecompose_NearCornerIsFarCorner(t *testing.T) {
	// The far edge x in [1,3] at y=1 meets the polyline only at the near
	// corner, so the center is empty and the right part starts there.
	nodes := decompose(t, irregular["near-is-far"])
	require.Len(t, nodes, 2)

	root := nodes[0]
	assert.Equal(t, model.Shift{DY: 1}, root.Shift)
	assert.Equal(t, 1, root.Depth)
	assert.Equal(t, poly(2, 0, 2, 1), root.Left)
	assert.Empty(t, root.Center)
	assert.Equal(t, poly(2, 1, 1, 1, 1, 3, 3, 3), root.Right)

	// The child starts where the right part leaves the far line.
	child := nodes[1]
	assert.Equal(t, poly(1, 1, 1, 3, 3, 3), child.Source)
	assert.Equal(t, root.Shift, child.Shift)
	assert.Equal(t, 2, child.Depth)
	assert.Equal(t, poly(1, 1, 1, 3), child.Left)
	assert.Equal(t, poly(3, 3), child.Right)
}

func TestDecompose_InsetStaysOnEndEdges(t *testing.T) {
	nodes := decompose(t, irregular["short-first"])
	require.Len(t, nodes, 2)
	assert.Equal(t, poly(3, 2, 2, 2), nodes[0].Left, "near corner stops at the end of the first edge")
	assert.Equal(t, poly(2, 1, 1, 1, 1, 3), nodes[1].Source)

	nodes = decompose(t, irregular["short-last"])
	require.Len(t, nodes, 2)
	assert.Equal(t, poly(1, 0, 1, 1), nodes[0].Left)
	assert.Equal(t, poly(2, 1, 2, 0), nodes[0].Right, "far corner stops at the start of the last edge")
	assert.Equal(t, poly(1, 2, 3, 2, 3, 1), nodes[0].Center)
}

func TestDecompose_IrregularFootprints(t *testing.T) {
	for name, fp := range irregular {
		t.Run(name, func(t *testing.T) {
			nodes := decompose(t, fp)
			assert.NotEmpty(t, nodes)
			for _, n := range nodes {
				assertPartition(t, n)
			}
		})
	}
}

func TestDecompose_RandomColumns(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 300 {
		fp := columns(rng, 1+rng.IntN(9))
		nodes, err := Decompose(extract(t, fp), defaultTestSettings())
		require.NoError(t, err, "footprint %d: %v", i, fp)
		for _, n := range nodes {
			assertPartition(t, n)
		}
	}
}

func TestDecompose_PartitionKeepsEveryPoint(t *testing.T) {
	for name, fp := range map[string][]model.Point{
		"hexagon": hexagonL, "plus": plusShape, "u": uShape, "stairs": staircase, "w": wShape,
	} {
		t.Run(name, func(t *testing.T) {
			for _, n := range decompose(t, fp) {
				assertPartition(t, n)
			}
		})
	}
}

func assertPartition(t *testing.T, n model.ThreePart) {
	t.Helper()
	joined := append(append(append(model.Polyline{}, n.Left...), n.Center...), n.Right...)
	for _, p := range n.Source {
		assert.Contains(t, joined, p, "source point %v lost in %v", p, n.Source)
	}
	assert.Equal(t, n.Source.First(), n.Left.First())
	assert.Equal(t, n.Source.Last(), n.Right.Last())
}

func TestDecompose_IterationCeiling(t *testing.T) {
	// A notch four steps deep cannot be probed with a ceiling of two.
	s := defaultTestSettings()
	s.MaxIterations = 2
	parts := []model.Polyline{poly(2, 5, 2, 1, 1, 1, 1, 5)}
	_, err := Decompose(parts, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIterationLimitExceeded)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageDecompose, se.Stage)
	assert.Contains(t, se.Fragment, "(2,5)")
}

func TestDecompose_LoopBackToSingleVertex(t *testing.T) {
	// Both inset corners start at the shared vertex and walk its two edges.
	parts := []model.Polyline{poly(3, 3, 3, 0, 0, 0, 0, 3, 3, 3)}
	nodes, err := Decompose(parts, defaultTestSettings())
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	n := nodes[0]
	assert.Equal(t, 3, n.Depth)
	assert.Equal(t, poly(3, 3, 3, 0), n.Left)
	assert.Equal(t, poly(0, 0), n.Center)
	assert.Equal(t, poly(0, 3, 3, 3), n.Right)
}

func TestDecompose_LoopStopsAtBump(t *testing.T) {
	parts := []model.Polyline{poly(3, 3, 3, 0, 2, 0, 2, 1, 1, 1, 1, 0, 0, 0, 0, 3, 3, 3)}
	nodes, err := Decompose(parts, defaultTestSettings())
	require.NoError(t, err)
	require.Len(t, nodes, 1, "a loop's center is not subdivided")

	n := nodes[0]
	assert.Equal(t, 2, n.Depth)
	assert.Equal(t, poly(3, 3, 3, 1), n.Left)
	assert.Equal(t, poly(1, 3, 3, 3), n.Right)
	assertPartition(t, n)
}

func TestInsertSplit(t *testing.T) {
	q := poly(0, 0, 0, 3, 2, 3)

	out, i, ok := insertSplit(q, pt(0, 2), false)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, poly(0, 0, 0, 2, 0, 3, 2, 3), out)

	out, i, ok = insertSplit(q, pt(0, 3), true)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, q, out)

	_, _, ok = insertSplit(q, pt(1, 1), false)
	assert.False(t, ok)
}

func TestCenterRuns(t *testing.T) {
	closed := poly(4, 2, 4, 1, 3, 1, 3, 2, 2, 2, 2, 1, 1, 1, 1, 2)
	runs := centerRuns(closed, func(p model.GridPoint) bool { return p.Y == 2 })
	assert.Equal(t, []model.Polyline{
		poly(4, 2, 4, 1, 3, 1, 3, 2),
		poly(2, 2, 2, 1, 1, 1, 1, 2),
	}, runs)
}

func TestTrimLeading(t *testing.T) {
	onLine := func(p model.GridPoint) bool { return p.Y == 1 }
	assert.Equal(t, poly(1, 1, 1, 3, 3, 3), trimLeading(poly(2, 1, 1, 1, 1, 3, 3, 3), onLine))
	assert.Equal(t, poly(2, 2, 2, 4), trimLeading(poly(2, 2, 2, 4), onLine))
	assert.Equal(t, poly(2, 1), trimLeading(poly(3, 1, 2, 1), onLine))
}
