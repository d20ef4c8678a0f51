package app

import (
	"errors"
	"fmt"

	"github.com/vk/depsflow/internal/graph"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // hcl definition file or directory

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	WorkerCount    int
	SingleThreaded bool // force the evaluation pool to one thread
	EvalMode       string
	Frames         int // number of frame-change passes after the initial one
	Watch          bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.Frames < 0 {
		return nil, errors.New("Frames must not be negative")
	}
	if _, err := parseMode(cfg.EvalMode); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// parseMode maps the CLI mode string onto the evaluation mode enum. An
// empty string means interactive.
func parseMode(s string) (graph.Mode, error) {
	switch s {
	case "", "interactive":
		return graph.ModeInteractive, nil
	case "preview":
		return graph.ModePreview, nil
	case "batch":
		return graph.ModeBatch, nil
	default:
		return 0, fmt.Errorf("invalid eval mode %q: must be 'interactive', 'preview' or 'batch'", s)
	}
}
