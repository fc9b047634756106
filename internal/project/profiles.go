package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// DefaultProfilesPath returns the default file path for custom scoring profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.ScoringProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist. Profiles that reuse a
// built-in name are dropped so the built-ins cannot be shadowed.
func LoadCustomProfiles(path string) ([]model.ScoringProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.ScoringProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.ScoringProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	kept := profiles[:0]
	for _, p := range profiles {
		if p.Name != "" && !isBuiltIn(p.Name) {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

func isBuiltIn(name string) bool {
	for _, p := range model.ScoringProfiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.ScoringProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.ScoringProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ScoringProfile{}, err
	}

	var profile model.ScoringProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.ScoringProfile{}, err
	}

	if profile.Name == "" {
		return model.ScoringProfile{}, errors.New("imported profile has no name")
	}
	if isBuiltIn(profile.Name) {
		return model.ScoringProfile{}, errors.New("imported profile reuses a built-in name")
	}
	return profile, nil
}
