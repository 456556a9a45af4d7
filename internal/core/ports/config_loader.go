package ports

import "go.trai.ch/redo/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
type ConfigLoader interface {
	// Load reads the configuration from the given working directory.
	// A missing configuration file yields domain.DefaultConfig.
	Load(cwd string) (domain.Config, error)
}
