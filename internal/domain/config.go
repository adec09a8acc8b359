package domain

import (
	"fmt"
	"log/slog"
)

type ExecutionMode string

const (
	ModeRouteData    ExecutionMode = "route_data"
	ModeSkipBranches ExecutionMode = "skip_branches"
)

type ErrorPolicy string

const (
	PolicyFailFast        ErrorPolicy = "fail_fast"
	PolicyContinueOnError ErrorPolicy = "continue_on_error"
)

// ExecutionConfig is passed explicitly into every Execute call. It is never
// stored as ambient state, so concurrent runs with different modes can
// coexist on one engine.
type ExecutionConfig struct {
	Mode               ExecutionMode                     `json:"mode"`
	ErrorPolicy        ErrorPolicy                       `json:"error_policy"`
	MaxConcurrentNodes int                               `json:"max_concurrent_nodes"`
	UseSwitchLayering  bool                              `json:"use_switch_layering"`
	Parameters         map[string]map[string]interface{} `json:"parameters,omitempty"`
}

func (c ExecutionConfig) WithDefaults() ExecutionConfig {
	if c.Mode == "" {
		c.Mode = ModeSkipBranches
	}
	if c.ErrorPolicy == "" {
		c.ErrorPolicy = PolicyFailFast
	}
	if c.MaxConcurrentNodes <= 0 {
		c.MaxConcurrentNodes = 4
	}
	return c
}

func (c ExecutionConfig) Validate() error {
	switch c.Mode {
	case ModeRouteData, ModeSkipBranches:
	default:
		return fmt.Errorf("%w: unknown execution mode %q", ErrInvalidConfig, c.Mode)
	}

	switch c.ErrorPolicy {
	case PolicyFailFast, PolicyContinueOnError:
	default:
		return fmt.Errorf("%w: unknown error policy %q", ErrInvalidConfig, c.ErrorPolicy)
	}

	return nil
}

// Config configures a Manager instance.
type Config struct {
	// DataDir is where finished run records are archived. Empty means the
	// archive keeps everything in memory.
	DataDir string       `json:"data_dir"`
	Logger  *slog.Logger `json:"-"`
}

func (c *Config) ApplyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
