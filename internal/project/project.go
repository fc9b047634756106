// Package project persists BoxPleat projects, application preferences,
// footprint templates and custom scoring profiles as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// FileExtension is the extension used for saved projects.
const FileExtension = ".boxpleat"

// Save writes a project, including its last computed result, to path.
func Save(path string, p model.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from path. Settings missing from older files are
// filled from DefaultSettings.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	p := model.Project{Settings: model.DefaultSettings()}
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	if p.Footprint == nil {
		p.Footprint = model.Footprint{}
	}
	return p, nil
}
