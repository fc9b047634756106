package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoxPleat/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into the QR code printed on each sheet.
// Scanning it recovers enough to recompute the pattern.
type LabelInfo struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Pitch     float64         `json:"pitch"`
	Footprint model.Footprint `json:"footprint"`
	PaperW    float64         `json:"paper_w"`
	PaperH    float64         `json:"paper_h"`
	Folds     int             `json:"folds"`
}

const (
	qrSize       = 30.0 // QR code size in mm
	labelPadding = 2.0  // mm internal padding
)

// CollectLabelInfo extracts the label payload from a computed project.
func CollectLabelInfo(p model.Project) LabelInfo {
	info := LabelInfo{
		ID:        p.ID,
		Name:      p.Name,
		Pitch:     p.Settings.Pitch,
		Footprint: p.Footprint,
	}
	if p.Result != nil {
		info.PaperW, info.PaperH = p.Result.PaperSize()
		info.Folds = p.Result.FoldCount()
	}
	return info
}

// renderLabel draws the QR code and a short caption with its top-left at x, y.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x-labelPadding, y-labelPadding, qrSize+2*labelPadding, qrSize+10, "D")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x, y+qrSize+1)
	pdf.CellFormat(qrSize, 3, fmt.Sprintf("%s @ %.0f", info.ID, info.Pitch), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}
