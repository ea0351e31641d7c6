package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/getmockd/mockroute/pkg/manifest"
)

// manifestPath returns the --manifest flag value, or the configured one.
func (a *app) manifestPath(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Manifest
}

func (a *app) stubsDir(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Stubs
}

func (a *app) manifestOptions() []manifest.Option {
	opts := []manifest.Option{manifest.WithLogger(a.log)}
	if a.cfg.Schema {
		opts = append(opts, manifest.WithSchemaValidation())
	}
	return opts
}

// loadManifest loads a single manifest file or every file matching a glob.
func (a *app) loadManifest(path string) (*manifest.Manifest, error) {
	if path == "" {
		return nil, errNoManifest
	}
	if isGlob(path) {
		return manifest.LoadGlob(path, a.manifestOptions()...)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return manifest.LoadFile(path, a.manifestOptions()...)
}

// manifestSource returns what the transport should load for path: the path
// itself for a single file, the merged document for a glob.
func (a *app) manifestSource(path string) (any, error) {
	if path == "" {
		return nil, nil
	}
	if isGlob(path) {
		m, err := manifest.LoadGlob(path, a.manifestOptions()...)
		if err != nil {
			return nil, err
		}
		return m.ToValue(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return path, nil
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[")
}
