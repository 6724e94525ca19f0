package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all loaded configurations
type Config struct {
	Tuning  *TuningConfig
	Sandbox *SandboxConfig
}

// Loader loads configuration files (YAML or JSON) using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadTuning loads tuning.yaml, falling back to tuning.json.
// Keys missing from the file keep their DefaultTuning values.
func (l *Loader) LoadTuning() (*TuningConfig, error) {
	cfg := DefaultTuning()
	if err := l.loadFirst(cfg, "tuning.yaml", "tuning.yml", "tuning.json"); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSandbox loads sandbox.yaml, falling back to sandbox.json
func (l *Loader) LoadSandbox() (*SandboxConfig, error) {
	cfg := DefaultSandbox()
	if err := l.loadFirst(cfg, "sandbox.yaml", "sandbox.yml", "sandbox.json"); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAll loads all configurations (tuning, sandbox)
func (l *Loader) LoadAll() (*Config, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}

	sandbox, err := l.LoadSandbox()
	if err != nil {
		return nil, err
	}

	return &Config{
		Tuning:  tuning,
		Sandbox: sandbox,
	}, nil
}

// loadFirst decodes the first of names that exists into v
func (l *Loader) loadFirst(v any, names ...string) error {
	for _, name := range names {
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		return decode(name, data, v)
	}
	return fmt.Errorf("failed to read %s: %w", names[0], fs.ErrNotExist)
}

// decode picks the codec from the file extension
func decode(name string, data []byte, v any) error {
	var err error
	switch path.Ext(name) {
	case ".json":
		err = json.Unmarshal(data, v)
	default:
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
