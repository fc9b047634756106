package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default synthesis settings applied to new projects
	DefaultPitch          float64 `json:"default_pitch"`
	DefaultMaxIterations  int     `json:"default_max_iterations"`
	DefaultScoringProfile string  `json:"default_scoring_profile"`
	DefaultValleyDepth    float64 `json:"default_valley_depth"`
	DefaultMountainDepth  float64 `json:"default_mountain_depth"`

	// Application preferences
	SnapInput      bool     `json:"snap_input"` // Snap imported footprints to the grid
	ExportDir      string   `json:"export_dir"` // Last directory used for exports
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultPitch:          defaults.Pitch,
		DefaultMaxIterations:  defaults.MaxIterations,
		DefaultScoringProfile: defaults.ScoringProfile,
		DefaultValleyDepth:    defaults.ValleyDepth,
		DefaultMountainDepth:  defaults.MountainDepth,
		SnapInput:             false,
		RecentProjects:        []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// Zero values in the config leave the setting untouched.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultPitch > 0 {
		s.Pitch = c.DefaultPitch
	}
	if c.DefaultMaxIterations > 0 {
		s.MaxIterations = c.DefaultMaxIterations
	}
	if c.DefaultScoringProfile != "" {
		s.ScoringProfile = c.DefaultScoringProfile
	}
	if c.DefaultValleyDepth > 0 {
		s.ValleyDepth = c.DefaultValleyDepth
	}
	if c.DefaultMountainDepth > 0 {
		s.MountainDepth = c.DefaultMountainDepth
	}
}

// MaxRecentProjects caps the recent project list.
const MaxRecentProjects = 10

// AddRecentProject moves path to the front of the recent list.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentProjects {
		recent = recent[:MaxRecentProjects]
	}
	c.RecentProjects = recent
}
