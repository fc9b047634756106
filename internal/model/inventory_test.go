package model

import (
	"testing"
)

func TestNewStockPresetWithPrice(t *testing.T) {
	sp := NewStockPresetWithPrice("Tant 350", 350, 350, "Tant", 1.20)
	if sp.PricePerSheet != 1.20 {
		t.Errorf("expected price 1.20, got %.2f", sp.PricePerSheet)
	}
	if sp.Paper != "Tant" {
		t.Errorf("expected paper 'Tant', got %s", sp.Paper)
	}
	if len(sp.ID) != 8 {
		t.Errorf("expected 8-char id, got %q", sp.ID)
	}
}

func TestNewStockPresetDefaultZeroPrice(t *testing.T) {
	sp := NewStockPreset("No Price", 100, 100, "Kami")
	if sp.PricePerSheet != 0 {
		t.Errorf("expected default price 0, got %.2f", sp.PricePerSheet)
	}
}

func TestStockPresetEstimateCarriesPrice(t *testing.T) {
	sp := NewStockPresetWithPrice("Sheet", 100, 100, "Kami", 0.5)
	est := sp.Estimate(rectResult(40, 80), nil, 4)
	if est.SheetsNeeded != 2 {
		t.Errorf("expected 2 sheets, got %d", est.SheetsNeeded)
	}
	if est.EstimatedCost != 1.0 {
		t.Errorf("expected cost 1.0, got %.2f", est.EstimatedCost)
	}
}

func TestDefaultInventoryLookups(t *testing.T) {
	inv := DefaultInventory()
	names := inv.StockNames()
	if len(names) != len(inv.Stocks) || names[2] != "A4" {
		t.Errorf("unexpected names %v", names)
	}

	a4 := inv.FindStockByName("a4")
	if a4 == nil || a4.Width != 210 || a4.Height != 297 {
		t.Fatalf("expected A4 preset, got %+v", a4)
	}
	if inv.FindStockByID(a4.ID) != a4 {
		t.Error("FindStockByID should return the same preset")
	}
	if inv.FindStockByName("Nope") != nil || inv.FindStockByID("zzz") != nil {
		t.Error("expected nil for unknown presets")
	}
}
