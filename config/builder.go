package config

import (
	"errors"
	"log/slog"

	"github.com/jpalmerr/dispatcher"
)

// BuildOptions converts parsed configuration into dispatcher options.
//
// logger may be nil, in which case the dispatcher's default logger is used.
func BuildOptions(cfg *Config, logger *slog.Logger) ([]dispatcher.Option, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	opts := []dispatcher.Option{
		dispatcher.WithLogging(cfg.Logging),
	}

	if cfg.Identity != "" {
		opts = append(opts, dispatcher.WithIdentityScheme(dispatcher.IdentityScheme(cfg.Identity)))
	}

	if logger != nil {
		opts = append(opts, dispatcher.WithLogger(logger))
	}

	policy, err := buildPanicPolicy(cfg.PanicPolicy)
	if err != nil {
		return nil, err
	}
	opts = append(opts, dispatcher.WithPanicPolicy(policy))

	return opts, nil
}

// buildPanicPolicy maps a panic_policy value onto a [dispatcher.PanicPolicy].
func buildPanicPolicy(name string) (dispatcher.PanicPolicy, error) {
	switch name {
	case "", "propagate":
		return dispatcher.PanicPropagate, nil
	case "recover":
		return dispatcher.PanicRecover, nil
	default:
		return 0, dispatcher.ErrUnknownPanicPolicy
	}
}

// Level returns the configured log level as a [slog.Level].
// Unrecognized values map to info.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
