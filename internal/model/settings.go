package model

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is returned when a Settings value cannot drive a run.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the configuration threaded through every synthesis stage.
type Settings struct {
	// Synthesis settings
	Pitch         float64 `json:"pitch"`          // Grid pitch in footprint units
	Epsilon       float64 `json:"epsilon"`        // Tolerance for on-grid tests
	MaxIterations int     `json:"max_iterations"` // Ceiling for every bounded growth loop

	// Scoring machine settings
	ScoringProfile string  `json:"scoring_profile"` // Name of the scoring profile to use
	FeedRate       float64 `json:"feed_rate"`       // Scoring feed rate mm/min
	PlungeRate     float64 `json:"plunge_rate"`     // Plunge feed rate mm/min
	SafeZ          float64 `json:"safe_z"`          // Safe retract height mm
	ValleyDepth    float64 `json:"valley_depth"`    // Score depth for valley folds mm
	MountainDepth  float64 `json:"mountain_depth"`  // Score depth for mountain folds mm
}

func DefaultSettings() Settings {
	return Settings{
		Pitch:          20,
		Epsilon:        1e-6,
		MaxIterations:  20,
		ScoringProfile: "Generic",
		FeedRate:       1200.0,
		PlungeRate:     300.0,
		SafeZ:          3.0,
		ValleyDepth:    0.3,
		MountainDepth:  0.15,
	}
}

// Validate reports whether the synthesis settings are usable.
func (s Settings) Validate() error {
	if s.Pitch <= 0 {
		return fmt.Errorf("%w: pitch must be positive, got %g", ErrInvalidSettings, s.Pitch)
	}
	if s.Epsilon <= 0 || s.Epsilon >= s.Pitch/2 {
		return fmt.Errorf("%w: epsilon %g out of range for pitch %g", ErrInvalidSettings, s.Epsilon, s.Pitch)
	}
	if s.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidSettings, s.MaxIterations)
	}
	return nil
}

// ScoringProfile defines a post-processor configuration for a scoring machine.
type ScoringProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Units       string `json:"units"` // "mm" or "inches"

	StartCode []string `json:"start_code"` // Commands at start of file
	ToolDown  string   `json:"tool_down"`  // Command that engages the scoring tool, empty for Z moves
	ToolUp    string   `json:"tool_up"`    // Command that lifts the scoring tool, empty for Z moves
	HomeXY    string   `json:"home_xy"`

	AbsoluteMode string `json:"absolute_mode"`
	RapidMove    string `json:"rapid_move"`
	FeedMove     string `json:"feed_move"`

	EndCode []string `json:"end_code"`

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`

	DecimalPlaces int `json:"decimal_places"`
}

// Built-in scoring profiles
var ScoringProfiles = []ScoringProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl controller with a spring-loaded creasing wheel on Z",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		HomeXY:        "$H",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Plotter",
		Description:   "Pen plotter style cutter with M3/M5 tool up/down",
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		ToolDown:      "M3",
		ToolUp:        "M5",
		HomeXY:        "G28 X0 Y0",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 2,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		HomeXY:        "G28 X0 Y0",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// CustomProfiles holds user-defined profiles loaded at startup.
var CustomProfiles []ScoringProfile

// AllProfiles returns the built-in profiles followed by the custom ones.
func AllProfiles() []ScoringProfile {
	all := make([]ScoringProfile, 0, len(ScoringProfiles)+len(CustomProfiles))
	all = append(all, ScoringProfiles...)
	return append(all, CustomProfiles...)
}

// GetScoringProfile returns a profile by name, or the Generic profile if not found.
func GetScoringProfile(name string) ScoringProfile {
	for _, p := range AllProfiles() {
		if p.Name == name {
			return p
		}
	}
	return ScoringProfiles[len(ScoringProfiles)-1] // Generic
}

// GetScoringProfileNames returns the names of all available profiles.
func GetScoringProfileNames() []string {
	var names []string
	for _, p := range AllProfiles() {
		names = append(names, p.Name)
	}
	return names
}
