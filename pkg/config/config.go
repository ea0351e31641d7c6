package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockroute/pkg/logging"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// EnvConfig names a config file explicitly.
const EnvConfig = "MOCKROUTE_CONFIG"

// DiscoveryOrder lists the file names Discover looks for, in priority order.
var DiscoveryOrder = []string{
	"mockroute.yaml",
	"mockroute.yml",
	".mockroute.yaml",
	".mockroute.yml",
}

// Config holds project settings.
type Config struct {
	// Manifest is a manifest file or a doublestar glob of manifest files.
	Manifest string `yaml:"manifest"`
	// Stubs is the stubs directory.
	Stubs string `yaml:"stubs"`
	// Schema enables manifest schema validation while loading.
	Schema bool `yaml:"schema"`
	Log    Log  `yaml:"log"`

	// Path is the file the settings were loaded from, if any.
	Path string `yaml:"-"`
}

// Log holds logging settings.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File, when set, receives a JSON copy of every log record.
	File string `yaml:"file"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Log: Log{Level: "warn", Format: string(logging.FormatText)},
	}
}

// Discover returns the config file to use from dir: the file named by
// MOCKROUTE_CONFIG, else the first DiscoveryOrder entry present in dir.
// It returns "" when there is none.
func Discover(dir string) (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%w: %s points to %s", ErrFileNotFound, EnvConfig, envPath)
		}
		return envPath, nil
	}

	for _, name := range DiscoveryOrder {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// Load reads settings from path.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadOrDefault loads path, or the discovered config file from the working
// directory when path is empty, falling back to Default.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		path, err = Discover(cwd)
		if err != nil {
			return nil, err
		}
		if path == "" {
			return Default(), nil
		}
	}
	return Load(path)
}

// Parse decodes YAML settings after expanding environment variables.
// Relative paths resolve against baseDir. Unknown keys are rejected.
func Parse(data []byte, baseDir string) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(strings.NewReader(ExpandEnvVars(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolvePaths(baseDir)
	return cfg, nil
}

// Validate checks the log settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q must be debug, info, warn or error", ErrInvalidConfig, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", string(logging.FormatText), string(logging.FormatJSON):
	default:
		return fmt.Errorf("%w: log.format %q must be text or json", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (c *Config) resolvePaths(baseDir string) {
	if baseDir == "" {
		return
	}
	for _, p := range []*string{&c.Manifest, &c.Stubs, &c.Log.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

// Logging returns the logging configuration described by c.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log.Level != "" {
		cfg.Level = logging.ParseLevel(c.Log.Level)
	}
	if c.Log.Format != "" {
		cfg.Format = logging.ParseFormat(c.Log.Format)
	}
	return cfg
}
