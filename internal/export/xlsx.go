package export

import (
	"fmt"

	"github.com/piwi3910/BoxPleat/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSummary     = "Summary"
	SheetFolds       = "Folds"
	SheetAllocations = "Allocations"
	SheetFootprint   = "Footprint"
)

// ExportXLSX writes a fold report for a computed project: summary figures,
// every fold run, every resolved allocation and the input footprint.
func ExportXLSX(path string, p model.Project) error {
	if p.Result == nil {
		return fmt.Errorf("no crease pattern to export")
	}
	r := *p.Result

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetFolds, SheetAllocations, SheetFootprint} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	w, h := r.PaperSize()
	summary := [][]interface{}{
		{"Project", p.Name},
		{"Result ID", r.ID},
		{"Pitch", r.Pitch},
		{"Paper Width", w},
		{"Paper Height", h},
		{"Mountain Folds", len(r.Crease.Mountain)},
		{"Valley Folds", len(r.Crease.Valley)},
		{"Concave Parts", len(r.Parts)},
		{"Collisions", r.Collisions()},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	folds := [][]interface{}{{"Type", "X1", "Y1", "X2", "Y2", "Length"}}
	for _, s := range r.Crease.Mountain {
		folds = append(folds, foldRow("Mountain", s))
	}
	for _, s := range r.Crease.Valley {
		folds = append(folds, foldRow("Valley", s))
	}
	if err := writeRows(f, SheetFolds, folds); err != nil {
		return err
	}

	allocs := [][]interface{}{{"Line", "Segment", "Left", "Right", "Top", "Bottom", "Horizontal", "Vertical", "Collision"}}
	for _, a := range r.Allocations {
		allocs = append(allocs, []interface{}{
			a.Line.String(), a.Segment.String(),
			a.Budgets.Left, a.Budgets.Right, a.Budgets.Top, a.Budgets.Bottom,
			a.Horizontal, a.Vertical, a.Collision,
		})
	}
	if err := writeRows(f, SheetAllocations, allocs); err != nil {
		return err
	}

	fp := [][]interface{}{{"X", "Y"}}
	for _, pt := range p.Footprint {
		fp = append(fp, []interface{}{pt.X, pt.Y})
	}
	if err := writeRows(f, SheetFootprint, fp); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func foldRow(kind string, s model.LineSegment) []interface{} {
	return []interface{}{kind, s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.Length()}
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, ref, err)
			}
		}
	}
	return nil
}
