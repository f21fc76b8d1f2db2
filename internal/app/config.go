package app

import (
	"errors"

	"github.com/vk/docpubgo/internal/switcher"
)

// Mode selects which of the two operations a run performs.
type Mode string

const (
	// ModeAdd is the single add-or-replace operation against a switcher
	// registry file.
	ModeAdd Mode = "add"

	// ModePipeline runs a declarative publish manifest.
	ModePipeline Mode = "pipeline"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Mode Mode

	// Add mode operands.
	Version      string
	Repo         string
	RegistryPath string

	// Pipeline mode operand.
	ManifestPath string

	Order     switcher.Order
	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Mode {
	case ModeAdd:
		if cfg.Version == "" || cfg.Repo == "" || cfg.RegistryPath == "" {
			return nil, errors.New("add mode requires a version, a repository and a registry path")
		}
	case ModePipeline:
		if cfg.ManifestPath == "" {
			return nil, errors.New("pipeline mode requires a manifest path")
		}
	default:
		return nil, errors.New("a mode is required")
	}

	if cfg.Order == "" {
		cfg.Order = switcher.NewestFirst
	}

	return &cfg, nil
}
