package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ECONLAB_CONFIG is set
//  3. env (prefix ECONLAB_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv("ECONLAB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Env keys like ECONLAB_QUEUE_SIZE map to the flat koanf key queue_size.
	envProvider := env.Provider("ECONLAB_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "econlab_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.JobQueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	switch c.HistoryBackend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("%w: history_backend must be memory or sqlite, got %q", ErrInvalidConfig, c.HistoryBackend)
	}
	if c.HistoryBackend == "sqlite" && c.HistoryPath == "" {
		return fmt.Errorf("%w: history_path must be set for the sqlite backend", ErrInvalidConfig)
	}
	if c.MaxHistoryLimit <= 0 {
		return fmt.Errorf("%w: max_history_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
