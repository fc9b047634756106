package engine

import (
	"testing"

	"github.com/piwi3910/BoxPleat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsets(t *testing.T) {
	o := newOffsets()
	o.add(1, 2, 2)
	o.add(2, 0, 3)
	o.coords = []int{1, 2}

	assert.Equal(t, 0, o.at(0))
	assert.Equal(t, 2, o.at(1), "low side shifts the line itself")
	assert.Equal(t, 2, o.at(2))
	assert.Equal(t, 5, o.at(3))
	assert.Equal(t, 5, o.sum())
}

func TestEmitRuns_HalfPitchAlternating(t *testing.T) {
	var c model.CreasePattern
	emitRuns(&c, model.Point{X: 0, Y: 0}, model.Point{X: 40, Y: 0}, defaultTestSettings())

	require.Len(t, c.Valley, 2)
	require.Len(t, c.Mountain, 2)
	assert.Equal(t, model.LineSegment{Start: model.Point{X: 0}, End: model.Point{X: 10}}, c.Valley[0])
	assert.Equal(t, model.LineSegment{Start: model.Point{X: 10}, End: model.Point{X: 20}}, c.Mountain[0])
	assert.Equal(t, model.Point{X: 40}, c.Mountain[1].End)
}

func TestEmitRuns_Remainder(t *testing.T) {
	var c model.CreasePattern
	emitRuns(&c, model.Point{X: 5, Y: 0}, model.Point{X: 5, Y: 25}, defaultTestSettings())

	require.Len(t, c.Valley, 2)
	require.Len(t, c.Mountain, 1)
	assert.InDelta(t, 5.0, c.Valley[1].Length(), 1e-9, "last run keeps the remainder")
	assert.Equal(t, model.Point{X: 5, Y: 25}, c.Valley[1].End)
}

func TestGenerate_RunLengths(t *testing.T) {
	settings := defaultTestSettings()
	for name, fp := range map[string][]model.Point{
		"hexagon": hexagonL, "plus": plusShape, "u": uShape, "stairs": staircase, "w": wShape,
	} {
		t.Run(name, func(t *testing.T) {
			result, err := New(settings).Compute(fp)
			require.NoError(t, err)
			for _, seg := range append(result.Crease.Valley, result.Crease.Mountain...) {
				assert.LessOrEqual(t, seg.Length(), settings.Pitch/2+settings.Epsilon)
				assert.Greater(t, seg.Length(), 0.0)
			}
		})
	}
}

func TestGenerate_PaperKeepsBottomLeft(t *testing.T) {
	result, err := New(defaultTestSettings()).Compute(model.Footprint(plusShape).Translate(200, 100))
	require.NoError(t, err)

	min, max := result.Paper.BoundingBox()
	assert.Equal(t, model.Point{X: 200, Y: 100}, min)
	assert.Equal(t, model.Point{X: 340, Y: 240}, max)
}
