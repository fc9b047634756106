package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoxPleat/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	sideColumn   = qrSize + 2*labelPadding + 10
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders a computed project as a printable fold sheet followed by
// an allocation summary page.
func ExportPDF(path string, p model.Project) error {
	if p.Result == nil || len(p.Result.Paper) == 0 {
		return fmt.Errorf("no crease pattern to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	if err := renderPatternPage(pdf, p); err != nil {
		return err
	}

	pdf.AddPage()
	renderSummaryPage(pdf, p)

	return pdf.OutputFileAndClose(path)
}

// renderPatternPage draws the paper and its folds scaled to the page.
func renderPatternPage(pdf *fpdf.Fpdf, p model.Project) error {
	r := *p.Result
	paperW, paperH := r.PaperSize()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f)", p.Name, paperW, paperH)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Mountain: %d | Valley: %d | Pitch: %.2f | Collisions: %d",
		len(r.Crease.Mountain), len(r.Crease.Valley), r.Pitch, r.Collisions())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - sideColumn
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/paperW, drawHeight/paperH)

	f, err := newFrame(r, scale, 0)
	if err != nil {
		return err
	}
	offsetX := marginLeft + (drawWidth-f.Width())/2
	offsetY := drawAreaTop

	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pts := make([]fpdf.PointType, len(r.Paper))
	for i, pt := range r.Paper {
		c := f.at(pt)
		pts[i] = fpdf.PointType{X: offsetX + c.X, Y: offsetY + c.Y}
	}
	pdf.Polygon(pts, "FD")

	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(int(mountainColor.R), int(mountainColor.G), int(mountainColor.B))
	for _, s := range r.Crease.Mountain {
		a, b := f.at(s.Start), f.at(s.End)
		pdf.Line(offsetX+a.X, offsetY+a.Y, offsetX+b.X, offsetY+b.Y)
	}

	pdf.SetDrawColor(int(valleyColor.R), int(valleyColor.G), int(valleyColor.B))
	pdf.SetDashPattern([]float64{2, 1}, 0)
	for _, s := range r.Crease.Valley {
		a, b := f.at(s.Start), f.at(s.End)
		pdf.Line(offsetX+a.X, offsetY+a.Y, offsetX+b.X, offsetY+b.Y)
	}
	pdf.SetDashPattern([]float64{}, 0)

	drawLegend(pdf, pageHeight-marginBottom-statsHeight+6)

	labelX := pageWidth - marginRight - qrSize - labelPadding
	return renderLabel(pdf, labelX, drawAreaTop+labelPadding, CollectLabelInfo(p))
}

// drawLegend explains the two fold line styles.
func drawLegend(pdf *fpdf.Fpdf, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetLineWidth(0.5)

	pdf.SetDrawColor(int(mountainColor.R), int(mountainColor.G), int(mountainColor.B))
	pdf.Line(marginLeft, y+2, marginLeft+10, y+2)
	pdf.SetXY(marginLeft+12, y)
	pdf.CellFormat(30, 4, "Mountain fold", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(int(valleyColor.R), int(valleyColor.G), int(valleyColor.B))
	pdf.SetDashPattern([]float64{2, 1}, 0)
	pdf.Line(marginLeft+45, y+2, marginLeft+55, y+2)
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetXY(marginLeft+57, y)
	pdf.CellFormat(30, 4, "Valley fold", "", 0, "L", false, 0, "")
}

// renderSummaryPage lists the resolved allocations and the run settings.
func renderSummaryPage(pdf *fpdf.Fpdf, p model.Project) {
	r := *p.Result

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Crease Pattern Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	paperW, paperH := r.PaperSize()
	summaryItems := []struct {
		label string
		value string
	}{
		{"Footprint Vertices", fmt.Sprintf("%d", len(p.Footprint))},
		{"Concave Parts", fmt.Sprintf("%d", len(r.Parts))},
		{"Paper Size", fmt.Sprintf("%.0f x %.0f", paperW, paperH)},
		{"Fold Runs", fmt.Sprintf("%d", r.FoldCount())},
		{"Collisions", fmt.Sprintf("%d", r.Collisions())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Allocations", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{30, 50, 25, 25, 25, 25, 30}
	headers := []string{"Line", "Segment", "Left", "Right", "Top", "Bottom", "Collision"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, a := range r.Allocations {
		if y > pageHeight-marginBottom-30 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		collision := ""
		if a.Collision {
			collision = "yes"
		}
		rowData := []string{
			a.Line.String(),
			a.Segment.String(),
			fmt.Sprintf("%d", a.Budgets.Left),
			fmt.Sprintf("%d", a.Budgets.Right),
			fmt.Sprintf("%d", a.Budgets.Top),
			fmt.Sprintf("%d", a.Budgets.Bottom),
			collision,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Grid Pitch", fmt.Sprintf("%.2f", p.Settings.Pitch)},
		{"Epsilon", fmt.Sprintf("%g", p.Settings.Epsilon)},
		{"Iteration Ceiling", fmt.Sprintf("%d", p.Settings.MaxIterations)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoxPleat - Box-Pleating Crease Pattern Synthesizer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
