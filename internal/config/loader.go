package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/djcmanager/djcmanager/internal/fsutil"
)

// Loader loads a Config from a settings file. Decoupling it from Config
// itself mirrors the teacher's own Loader interface, which lets callers
// substitute a fake in tests without touching a real file.
type Loader interface {
	Load(path string) (Config, error)
}

// HCLLoader is the production Loader, backed by hclsimple (itself a thin
// wrapper over gohcl.DecodeBody).
type HCLLoader struct{}

// NewLoader returns an HCLLoader.
func NewLoader() *HCLLoader {
	return &HCLLoader{}
}

// Load decodes path as HCL into a Model and converts it to a Config. If
// path names a directory, the first *.hcl file found in it (recursively)
// is used instead, so operators can point -config at a settings directory
// without naming the file inside it.
func (l *HCLLoader) Load(path string) (Config, error) {
	resolved, err := resolveFile(path)
	if err != nil {
		return Config{}, err
	}

	var m Model
	if err := hclsimple.DecodeFile(resolved, nil, &m); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", resolved, err)
	}
	return FromModel(m)
}

func resolveFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return "", fmt.Errorf("config: failed to search %s for .hcl files: %w", path, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("config: no .hcl files found under %s", path)
	}
	return files[0], nil
}
