// Package project persists optimization projects as JSON files and locates
// the application config directory.
package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/shelfwright/shelfwright/internal/engine"
	"github.com/shelfwright/shelfwright/internal/model"
)

// Project bundles one optimization: the inputs, the tuning and (once a run
// completes) the result.
type Project struct {
	Name         string             `json:"name"`
	CreatedAt    time.Time          `json:"created_at"`
	Requirements model.Requirements `json:"requirements"`
	Config       engine.Config      `json:"config"`
	Result       *engine.Report     `json:"result,omitempty"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.shelfwright/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".shelfwright")
}

// DefaultProjectsDir returns the default directory for saved projects.
func DefaultProjectsDir() string {
	return filepath.Join(DefaultConfigDir(), "projects")
}

// Save persists a project to the given path as indented JSON. Missing parent
// directories are created.
func Save(path string, p Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, err
	}
	if p.Requirements.Width <= 0 {
		return Project{}, errors.New("project has no requirements")
	}
	return p, nil
}
