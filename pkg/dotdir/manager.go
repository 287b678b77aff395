// Package dotdir resolves the .vidgen/ directory that holds config.toml.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the vidgen directory.
	dirName = ".vidgen"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the absolute path to an existing .vidgen/ directory.
// Order of precedence is as follows:
//  1. Provided override (created if missing)
//  2. Local ./.vidgen/ dir
//  3. Home ~/.vidgen/ dir
//
// It returns "" when no override is given and neither directory exists.
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		return m.ensure(overrideDir)
	}

	if dir, ok := m.localDir(); ok {
		return dir, nil
	}

	home, err := m.homeDir()
	if err != nil {
		return "", err
	}
	if isDir(home) {
		return home, nil
	}

	return "", nil
}

// Create behaves like Target but creates ~/.vidgen/ when nothing is found.
func (m *Manager) Create(overrideDir string) (string, error) {
	dir, err := m.Target(overrideDir)
	if err != nil || dir != "" {
		return dir, err
	}

	home, err := m.homeDir()
	if err != nil {
		return "", err
	}
	return m.ensure(home)
}

func (m *Manager) ensure(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating vidgen directory %s: %w", dir, err)
	}
	return filepath.Abs(dir)
}

func (m *Manager) localDir() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	dir := filepath.Join(cwd, dirName)
	return dir, isDir(dir)
}

func (m *Manager) homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
