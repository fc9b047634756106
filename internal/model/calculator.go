package model

import "math"

// PaperEstimate holds the results of a stock paper calculation for a crease pattern.
type PaperEstimate struct {
	PaperWidth       float64 `json:"paper_width"`        // Bounding width of the stretched sheet
	PaperHeight      float64 `json:"paper_height"`       // Bounding height of the stretched sheet
	PaperArea        float64 `json:"paper_area"`         // Area of the stretched outline
	FootprintArea    float64 `json:"footprint_area"`     // Area of the folded footprint
	StretchRatio     float64 `json:"stretch_ratio"`      // PaperArea / FootprintArea
	StockWidth       float64 `json:"stock_width"`        // Stock sheet width
	StockHeight      float64 `json:"stock_height"`       // Stock sheet height
	Fits             bool    `json:"fits"`               // At least one pattern fits on a stock sheet
	Rotated          bool    `json:"rotated"`            // Best layout turns the pattern by 90 degrees
	PatternsPerSheet int     `json:"patterns_per_sheet"` // Patterns cut from one stock sheet
	Copies           int     `json:"copies"`             // Patterns requested
	SheetsNeeded     int     `json:"sheets_needed"`      // Stock sheets to buy for Copies
	WastePercent     float64 `json:"waste_percent"`      // Unused share of a full stock sheet
	PricePerSheet    float64 `json:"price_per_sheet"`    // Price used for estimation
	EstimatedCost    float64 `json:"estimated_cost"`     // SheetsNeeded * PricePerSheet
}

// CalculatePaperEstimate computes how much stock paper a crease pattern needs.
// Patterns are laid out on a simple rectangular grid of bounding boxes, turned
// by 90 degrees when that fits more of them.
func CalculatePaperEstimate(r Result, footprint Footprint, stockWidth, stockHeight float64, copies int, pricePerSheet float64) PaperEstimate {
	w, h := r.PaperSize()
	est := PaperEstimate{
		PaperWidth:    w,
		PaperHeight:   h,
		PaperArea:     math.Abs(r.Paper.Area()),
		FootprintArea: math.Abs(footprint.Area()),
		StockWidth:    stockWidth,
		StockHeight:   stockHeight,
		Copies:        copies,
		PricePerSheet: pricePerSheet,
	}
	if est.FootprintArea > 0 {
		est.StretchRatio = est.PaperArea / est.FootprintArea
	}
	if w <= 0 || h <= 0 || stockWidth <= 0 || stockHeight <= 0 {
		return est
	}

	upright := fitCount(stockWidth, w) * fitCount(stockHeight, h)
	turned := fitCount(stockWidth, h) * fitCount(stockHeight, w)
	est.PatternsPerSheet = upright
	if turned > upright {
		est.PatternsPerSheet = turned
		est.Rotated = true
	}
	if est.PatternsPerSheet == 0 {
		return est
	}
	est.Fits = true

	used := est.PaperArea * float64(est.PatternsPerSheet)
	est.WastePercent = (1 - used/(stockWidth*stockHeight)) * 100

	if copies > 0 {
		est.SheetsNeeded = int(math.Ceil(float64(copies) / float64(est.PatternsPerSheet)))
	}
	est.EstimatedCost = float64(est.SheetsNeeded) * pricePerSheet
	return est
}

func fitCount(stock, size float64) int {
	return int(math.Floor(stock/size + 1e-9))
}
