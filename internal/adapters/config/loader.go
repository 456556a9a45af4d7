// Package config provides the configuration loader for redo.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the location of redo.yaml.
const EnvConfigPath = "REDO_CONFIG"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Filename string
}

// NewLoader creates a new Loader reading domain.ConfigFileName, or the file
// named by REDO_CONFIG when set.
func NewLoader() *Loader {
	name := domain.ConfigFileName
	if override := os.Getenv(EnvConfigPath); override != "" {
		name = override
	}
	return &Loader{Filename: name}
}

// Load reads the configuration from the given working directory.
// A missing file yields domain.DefaultConfig.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	path := l.Filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Redofile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	cfg, err := file.resolve()
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// resolve applies the file on top of the defaults and validates it.
func (f Redofile) resolve() (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if f.StateDir != "" {
		// Temp outputs are renamed onto targets, so the state directory
		// must live inside the project tree.
		if !filepath.IsLocal(f.StateDir) {
			return domain.Config{}, invalid("state_dir", f.StateDir)
		}
		cfg.StateDir = f.StateDir
	}
	if f.Shell != "" {
		cfg.Shell = f.Shell
	}

	switch alg := domain.SignatureAlgorithm(strings.ToLower(f.Signature)); alg {
	case "":
	case domain.SignatureSHA256, domain.SignatureXXH64:
		cfg.Signature = alg
	default:
		return domain.Config{}, invalid("signature", f.Signature)
	}

	switch kind := domain.TelemetryKind(strings.ToLower(f.Telemetry)); kind {
	case "":
	case domain.TelemetryNone, domain.TelemetryProgrock:
		cfg.Telemetry = kind
	default:
		return domain.Config{}, invalid("telemetry", f.Telemetry)
	}

	if f.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
			return domain.Config{}, invalid("log_level", f.LogLevel)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func invalid(key, value string) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unsupported value"), "key", key), "value", value)
}
