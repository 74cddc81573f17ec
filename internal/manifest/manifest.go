// Package manifest reads the optional openfxc.toml project manifest.
// The manifest supplies CLI defaults only; the core pipelines never
// consult it.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is a located, parsed openfxc.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the openfxc.toml schema.
type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Cache    CacheConfig    `toml:"cache"`
}

// PipelineConfig carries the default pipeline parameters.
type PipelineConfig struct {
	Profile string `toml:"profile"`
	Passes  string `toml:"passes"`
}

// CacheConfig configures the optimize disk cache.
type CacheConfig struct {
	Dir string `toml:"dir"`
}

// Find walks from startDir to the filesystem root looking for
// openfxc.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "openfxc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load locates and parses the manifest. The second result is false
// when no manifest exists, which is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, true, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}
