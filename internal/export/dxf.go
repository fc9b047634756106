package export

import (
	"fmt"

	"github.com/piwi3910/BoxPleat/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerPaper    = "PAPER"
	LayerMountain = "MOUNTAIN"
	LayerValley   = "VALLEY"
)

// ExportDXF writes r to path with the paper outline and each fold type on
// its own layer. Coordinates are footprint units.
func ExportDXF(path string, r model.Result) error {
	if len(r.Paper) == 0 {
		return ErrEmptyResult
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerMountain, color.Red},
		{LayerValley, color.Blue},
		{LayerPaper, color.White},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	vertices := make([][]float64, len(r.Paper))
	for i, p := range r.Paper {
		vertices[i] = []float64{p.X, p.Y}
	}
	if _, err := d.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("paper outline: %w", err)
	}

	folds := []struct {
		layer string
		segs  []model.LineSegment
	}{
		{LayerMountain, r.Crease.Mountain},
		{LayerValley, r.Crease.Valley},
	}
	for _, f := range folds {
		if err := d.ChangeLayer(f.layer); err != nil {
			return err
		}
		for _, s := range f.segs {
			if _, err := d.Line(s.Start.X, s.Start.Y, 0, s.End.X, s.End.Y, 0); err != nil {
				return fmt.Errorf("%s fold: %w", f.layer, err)
			}
		}
	}

	return d.SaveAs(path)
}
