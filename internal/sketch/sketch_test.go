package sketch

import (
	"errors"
	"testing"

	"github.com/piwi3910/BoxPleat/internal/model"
)

func TestSketchAddSnaps(t *testing.T) {
	s := New(20)
	s.Add(21, 39)
	got := s.Points()
	if len(got) != 1 || got[0] != (model.Point{X: 20, Y: 40}) {
		t.Errorf("expected snapped point (20,40), got %v", got)
	}
	if s.Add(19, 41) {
		t.Error("adding the same grid point twice should be ignored")
	}
}

func TestSketchUndoRedo(t *testing.T) {
	s := New(10)
	s.Add(0, 0)
	s.Add(10, 0)
	if !s.Undo() {
		t.Fatal("undo should succeed")
	}
	if n := len(s.Points()); n != 1 {
		t.Fatalf("expected 1 point after undo, got %d", n)
	}
	if !s.Redo() {
		t.Fatal("redo should succeed")
	}
	if n := len(s.Points()); n != 2 {
		t.Errorf("expected 2 points after redo, got %d", n)
	}
}

func TestSketchClearUndo(t *testing.T) {
	s := New(10)
	s.Add(0, 0)
	s.Add(10, 0)
	s.Clear()
	if len(s.Points()) != 0 {
		t.Fatal("clear should remove all points")
	}
	s.Undo()
	if n := len(s.Points()); n != 2 {
		t.Errorf("expected clear to be undoable, got %d points", n)
	}
}

func TestSketchFootprint(t *testing.T) {
	s := New(10)
	for _, p := range [][2]float64{{0, 0}, {20, 0}, {20, 20}, {0, 20}} {
		s.Add(p[0], p[1])
	}
	if _, err := s.Footprint(); !errors.Is(err, ErrNotClosed) {
		t.Fatalf("expected ErrNotClosed, got %v", err)
	}
	if !s.Close() {
		t.Fatal("close should append the first point")
	}
	if !s.Closed() {
		t.Fatal("sketch should report closed")
	}
	fp, err := s.Footprint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fp) != 4 {
		t.Errorf("expected 4 footprint vertices, got %d", len(fp))
	}
	if s.Close() {
		t.Error("closing twice should be a no-op")
	}
}

func TestSnap(t *testing.T) {
	got := Snap([]model.Point{{X: 4, Y: 6}, {X: 14, Y: 26}}, 10)
	want := []model.Point{{X: 0, Y: 10}, {X: 10, Y: 30}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
