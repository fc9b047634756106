package model

import (
	"errors"
	"testing"
)

func TestAllProfilesIncludesBuiltInAndCustom(t *testing.T) {
	CustomProfiles = nil

	builtInCount := len(ScoringProfiles)
	all := AllProfiles()
	if len(all) != builtInCount {
		t.Errorf("expected %d profiles with no custom, got %d", builtInCount, len(all))
	}

	CustomProfiles = []ScoringProfile{
		{Name: "Custom1", Description: "Test custom"},
	}
	defer func() { CustomProfiles = nil }()

	all = AllProfiles()
	if len(all) != builtInCount+1 {
		t.Errorf("expected %d profiles with 1 custom, got %d", builtInCount+1, len(all))
	}
}

func TestGetScoringProfileFindsCustom(t *testing.T) {
	CustomProfiles = []ScoringProfile{
		{Name: "MyCustom", RapidMove: "G0", FeedMove: "G1"},
	}
	defer func() { CustomProfiles = nil }()

	if p := GetScoringProfile("MyCustom"); p.Name != "MyCustom" {
		t.Errorf("expected MyCustom, got %s", p.Name)
	}
}

func TestGetScoringProfileFallsBackToGeneric(t *testing.T) {
	if p := GetScoringProfile("NonExistent"); p.Name != "Generic" {
		t.Errorf("expected Generic fallback, got %s", p.Name)
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero pitch", func(s *Settings) { s.Pitch = 0 }},
		{"negative pitch", func(s *Settings) { s.Pitch = -5 }},
		{"zero epsilon", func(s *Settings) { s.Epsilon = 0 }},
		{"huge epsilon", func(s *Settings) { s.Epsilon = 15 }},
		{"zero iterations", func(s *Settings) { s.MaxIterations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestFootprintBoundingBoxAndArea(t *testing.T) {
	fp := Footprint{{10, 5}, {50, 5}, {50, 25}, {10, 25}}
	min, max := fp.BoundingBox()
	if min != (Point{10, 5}) || max != (Point{50, 25}) {
		t.Errorf("unexpected bounding box %v %v", min, max)
	}
	if fp.Area() != 800 {
		t.Errorf("expected area 800, got %f", fp.Area())
	}

	reversed := Footprint{{10, 25}, {50, 25}, {50, 5}, {10, 5}}
	if reversed.Area() != -800 {
		t.Errorf("expected clockwise area -800, got %f", reversed.Area())
	}

	moved := fp.Translate(-10, -5)
	if moved[0] != (Point{0, 0}) {
		t.Errorf("expected translated origin, got %v", moved[0])
	}
}

func TestGridSegmentCanonicalAndLine(t *testing.T) {
	s := GridSegment{Start: GridPoint{3, 2}, End: GridPoint{1, 2}}.Canonical()
	if s.Start != (GridPoint{1, 2}) {
		t.Errorf("expected canonical start (1,2), got %v", s.Start)
	}
	if s.Vertical() {
		t.Error("horizontal segment reported as vertical")
	}
	if s.Line() != (OrthogonalLine{Axis: AxisY, Coord: 2}) {
		t.Errorf("unexpected line %v", s.Line())
	}
	if s.Len() != 2 {
		t.Errorf("expected length 2, got %d", s.Len())
	}
}

func TestBudgetsEnvelopes(t *testing.T) {
	b := Budgets{Left: 1, Right: 3, Top: 2}
	if b.Vertical() != 3 {
		t.Errorf("expected vertical envelope 3, got %d", b.Vertical())
	}
	if b.Horizontal() != 2 {
		t.Errorf("expected horizontal envelope 2, got %d", b.Horizontal())
	}
	b.Set(SideBottom, 5)
	if b.Get(SideBottom) != 5 || b.Horizontal() != 5 {
		t.Errorf("Set did not update bottom: %+v", b)
	}
	sum := b.Plus(Budgets{Left: 1})
	if sum.Left != 2 {
		t.Errorf("expected left 2 after Plus, got %d", sum.Left)
	}
}

func TestShiftRotated(t *testing.T) {
	s := Shift{DX: 1}
	if s.Rotated() != (Shift{DY: 1}) {
		t.Errorf("expected (0,1), got %+v", s.Rotated())
	}
	if s.Rotated().Rotated() != (Shift{DX: -1}) {
		t.Errorf("two quarter turns should reverse the shift, got %+v", s.Rotated().Rotated())
	}
	if v := s.Rotated().Vec(); v != (GridPoint{0, 1}) {
		t.Errorf("expected (0,1), got %v", v)
	}
}

func TestResultStats(t *testing.T) {
	r := NewResult(20)
	r.Paper = Footprint{{0, 0}, {100, 0}, {100, 60}, {0, 60}}
	r.Crease.Valley = []LineSegment{{}, {}}
	r.Crease.Mountain = []LineSegment{{}}
	r.Allocations = []ResolvedAllocation{{Collision: true}, {}}

	w, h := r.PaperSize()
	if w != 100 || h != 60 {
		t.Errorf("unexpected paper size %fx%f", w, h)
	}
	if r.FoldCount() != 3 {
		t.Errorf("expected 3 folds, got %d", r.FoldCount())
	}
	if r.Collisions() != 1 {
		t.Errorf("expected 1 collision, got %d", r.Collisions())
	}
}

func TestProjectSetResultAssignsID(t *testing.T) {
	a, b := NewResult(20), NewResult(20)
	if a.ID != "" {
		t.Fatalf("a fresh result should have no id, got %q", a.ID)
	}
	if a.Pitch != b.Pitch || a.ID != b.ID {
		t.Error("identical results should compare equal")
	}

	p := NewProject()
	p.SetResult(a)
	if p.Result == nil || len(p.Result.ID) != 8 {
		t.Fatalf("expected an 8-char id, got %+v", p.Result)
	}

	kept := NewResult(20)
	kept.ID = "keepme00"
	p.SetResult(kept)
	if p.Result.ID != "keepme00" {
		t.Errorf("existing id should be kept, got %q", p.Result.ID)
	}
}
