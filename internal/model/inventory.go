package model

import "strings"

// StockPreset represents a reusable paper sheet definition.
type StockPreset struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Paper         string  `json:"paper"`
	PricePerSheet float64 `json:"price_per_sheet"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, width, height float64, paper string) StockPreset {
	return StockPreset{
		ID:     newID(),
		Name:   name,
		Width:  width,
		Height: height,
		Paper:  paper,
	}
}

// NewStockPresetWithPrice creates a StockPreset with a price per sheet.
func NewStockPresetWithPrice(name string, width, height float64, paper string, price float64) StockPreset {
	sp := NewStockPreset(name, width, height, paper)
	sp.PricePerSheet = price
	return sp
}

// Estimate computes the paper needed to cut copies of r from this stock.
func (sp StockPreset) Estimate(r Result, footprint Footprint, copies int) PaperEstimate {
	return CalculatePaperEstimate(r, footprint, sp.Width, sp.Height, copies, sp.PricePerSheet)
}

// Inventory holds the user's saved paper stock presets.
type Inventory struct {
	Stocks []StockPreset `json:"stocks"`
}

// DefaultInventory returns an inventory populated with common paper sizes in mm.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset("Kami 150", 150, 150, "Kami"),
			NewStockPreset("Kami 350", 350, 350, "Kami"),
			NewStockPreset("A4", 210, 297, "Copy"),
			NewStockPreset("A3", 297, 420, "Copy"),
			NewStockPreset("Letter", 215.9, 279.4, "Copy"),
			NewStockPreset("Tant 350", 350, 350, "Tant"),
			NewStockPreset("Elephant Hide 500x700", 500, 700, "Elephant Hide"),
		},
	}
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns the preset names in inventory order.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}

// FindStockByName returns a pointer to the first stock preset with the given
// name, compared case-insensitively, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if strings.EqualFold(inv.Stocks[i].Name, name) {
			return &inv.Stocks[i]
		}
	}
	return nil
}
