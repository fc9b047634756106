package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// ConfigDirEnv names the environment variable that relocates every
// BoxPleat data file.
const ConfigDirEnv = "BOXPLEAT_HOME"

// DefaultConfigDir is $BOXPLEAT_HOME when set, else ~/.boxpleat.
func DefaultConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".boxpleat")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig replaces the config at path through a temporary file in
// the same directory, creating the directory if needed.
func SaveAppConfig(path string, config model.AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadAppConfig reads the config at path over DefaultAppConfig, so a
// missing file or missing keys fall back to the defaults. The recent list
// comes back without blanks or repeats and never nil.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	config.RecentProjects = tidyRecent(config.RecentProjects)
	return config, nil
}

// PruneRecentProjects drops recent entries whose files are gone and
// returns how many were removed.
func PruneRecentProjects(config *model.AppConfig) int {
	before := len(config.RecentProjects)
	config.RecentProjects = slices.DeleteFunc(config.RecentProjects, func(p string) bool {
		_, err := os.Stat(p)
		return errors.Is(err, fs.ErrNotExist)
	})
	return before - len(config.RecentProjects)
}

func tidyRecent(paths []string) []string {
	out := []string{}
	for _, p := range paths {
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out[:min(len(out), model.MaxRecentProjects)]
}
