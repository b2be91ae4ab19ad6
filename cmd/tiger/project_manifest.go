package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectManifest is a located and parsed tiger.toml.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
}

type packageConfig struct {
	Name string `toml:"name"`
	Main string `toml:"main"`
}

type buildConfig struct {
	Dialect string `toml:"dialect"`
}

// MainPath resolves the entry file relative to the manifest directory.
func (m *projectManifest) MainPath() string {
	main := m.Config.Package.Main
	if main == "" {
		main = "main.tig"
	}
	return filepath.Join(m.Root, main)
}

const manifestName = "tiger.toml"

// findTigerToml searches startDir and each of its ancestors for a manifest.
// An empty startDir means the working directory.
func findTigerToml(startDir string) (string, bool, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for dir := abs; ; dir = filepath.Dir(dir) {
		path := filepath.Join(dir, manifestName)
		switch _, err := os.Stat(path); {
		case err == nil:
			return path, true, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", false, fmt.Errorf("stat %s: %w", path, err)
		}
		if filepath.Dir(dir) == dir {
			return "", false, nil
		}
	}
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, found, err := findTigerToml(startDir)
	if err != nil || !found {
		return nil, found, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}
