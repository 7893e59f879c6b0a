// Package manifest probes and reads the project's package.json. The file is
// owned by the npm ecosystem; testctl only checks that it exists and inspects
// the embedded scripts block to warn about undefined test scripts.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrManifestMissing indicates package.json is absent. This is a fatal
// precondition: there is nothing testctl can install to recover.
var ErrManifestMissing = errors.New("package.json not found")

// Manifest is the subset of package.json testctl cares about.
type Manifest struct {
	Name    string            `json:"name"`
	Scripts map[string]string `json:"scripts"`
}

// Path returns the package.json path for a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, "package.json")
}

// Exists reports whether the project has a package.json.
func Exists(projectDir string) bool {
	info, err := os.Stat(Path(projectDir))
	return err == nil && !info.IsDir()
}

// Load parses the project's package.json. A missing file returns
// ErrManifestMissing; a malformed file is a regular error.
func Load(projectDir string) (*Manifest, error) {
	path := Path(projectDir)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestMissing, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// HasScript reports whether the scripts block defines the named entry.
func (m *Manifest) HasScript(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Scripts[name]
	return ok
}
