package module

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Manifest is the optional per-project `noxy.yaml` describing module
// search roots beyond the script's own directory (spec.md §4.5, §6.4
// "Standard library directory").
type Manifest struct {
	// StdlibRoot is a directory searched after the importing file's own
	// directory, typically pointing at the bundled stdlib/ tree.
	StdlibRoot string `yaml:"stdlib_root"`
	// ExtraRoots are additional search roots tried, in order, after
	// StdlibRoot.
	ExtraRoots []string `yaml:"extra_roots"`
}

// defaultManifest is used when no noxy.yaml is present.
func defaultManifest() *Manifest {
	return &Manifest{StdlibRoot: "stdlib"}
}

// LoadManifest reads noxy.yaml from dir, if present, falling back to
// defaultManifest when the file is absent.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "noxy.yaml")
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultManifest(), nil
	}
	if err != nil {
		return nil, err
	}

	m := defaultManifest()
	if err := yaml.Unmarshal(content, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Roots builds the ordered search-root list for a Loader rooted at
// scriptDir: the script's own directory, then the manifest's stdlib root
// (resolved relative to dir), then any extra roots.
func (m *Manifest) Roots(dir, scriptDir string) []string {
	roots := []string{scriptDir}
	if m.StdlibRoot != "" {
		roots = append(roots, filepath.Join(dir, m.StdlibRoot))
	}
	for _, r := range m.ExtraRoots {
		roots = append(roots, filepath.Join(dir, r))
	}
	return roots
}
