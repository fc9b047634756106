package gcode

import "testing"

func TestParseGCode_Empty(t *testing.T) {
	if moves := ParseGCode(""); len(moves) != 0 {
		t.Errorf("expected 0 moves, got %d", len(moves))
	}
}

func TestParseGCode_Comments(t *testing.T) {
	code := "; header\n( plotter style )\nG0 X10 Y0 ; trailing\nG1 X20 (inline) F100\n"
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[1].ToX != 20 || moves[1].FeedRate != 100 {
		t.Errorf("unexpected move %+v", moves[1])
	}
}

func TestParseGCode_SkipsNonMotion(t *testing.T) {
	moves := ParseGCode("G90\nG21\nM3\nM0\nG28 X0 Y0\nG01 X5\n")
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].Type != MoveFeed {
		t.Errorf("expected feed, got %v", moves[0].Type)
	}
}

func TestParseGCode_StateTracking(t *testing.T) {
	moves := ParseGCode("G0 X10 Y10\nG1 Z-0.3 F300\nG1 X20 F1200\nG0 Z3\n")
	if len(moves) != 4 {
		t.Fatalf("expected 4 moves, got %d", len(moves))
	}
	want := []MoveType{MoveRapid, MovePlunge, MoveFeed, MoveRetract}
	for i, m := range moves {
		if m.Type != want[i] {
			t.Errorf("move %d: expected type %v, got %v", i, want[i], m.Type)
		}
	}
	if moves[2].FromY != 10 || moves[2].ToY != 10 {
		t.Error("Y should carry over between moves")
	}
	if moves[2].FeedRate != 1200 || moves[1].FeedRate != 300 {
		t.Error("feed rate should be sticky until changed")
	}
}

func TestParseGCode_NegativeCoordinates(t *testing.T) {
	moves := ParseGCode("G0 X-5.5 Y-2\n")
	if moves[0].ToX != -5.5 || moves[0].ToY != -2 {
		t.Errorf("unexpected target (%f,%f)", moves[0].ToX, moves[0].ToY)
	}
}

func TestClassifyMove(t *testing.T) {
	tests := []struct {
		name     string
		isRapid  bool
		fromZ    float64
		toZ      float64
		moveXY   bool
		expected MoveType
	}{
		{"rapid xy", true, 3, 3, true, MoveRapid},
		{"rapid up", true, -1, 3, false, MoveRetract},
		{"plunge", false, 3, -0.3, false, MovePlunge},
		{"feed up", false, -0.3, 3, false, MoveRetract},
		{"score", false, -0.3, -0.3, true, MoveFeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toX := 0.0
			if tt.moveXY {
				toX = 10
			}
			if got := classifyMove(tt.isRapid, tt.fromZ, tt.toZ, 0, 0, toX, 0); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]Move{
		{Type: MoveRapid, ToX: 3, ToY: 4},
		{Type: MovePlunge, FromX: 3, FromY: 4, ToX: 3, ToY: 4, ToZ: -1},
		{Type: MoveFeed, FromX: 3, FromY: 4, ToX: 13, ToY: 4},
		{Type: MoveRetract, FromX: 13, FromY: 4, ToX: 13, ToY: 4},
	})
	if stats.Runs != 1 || stats.ScoreLength != 10 || stats.RapidLength != 5 {
		t.Errorf("unexpected stats %+v", stats)
	}
}
