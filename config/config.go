// Package config provides YAML configuration parsing for the dispatcher.
//
// A configuration file carries the dispatcher settings and, optionally, a
// scripted scenario of subscribers and publish/unsubscribe steps that
// cmd/dispatcher can replay against a fresh dispatcher.
//
// Example configuration:
//
//	logging: true
//	identity: sequence
//	panic_policy: propagate
//
//	subscribers:
//	  - name: audit
//	    channel: news
//	    action: print
//	    prefix: "[audit]"
//
//	steps:
//	  - op: publish
//	    channel: news
//	    data: {headline: "${HEADLINE:-markets up}"}
//	  - op: unsubscribe
//	    subscriber: audit
//
// Settings can be overridden from the environment with the DISPATCHER_ prefix
// (DISPATCHER_LOGGING, DISPATCHER_IDENTITY, DISPATCHER_PANIC_POLICY,
// DISPATCHER_LOG_LEVEL, DISPATCHER_LOG_FORMAT).
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override file settings.
const EnvPrefix = "DISPATCHER_"

// Subscriber actions.
const (
	ActionPrint = "print"
	ActionCount = "count"
	ActionFail  = "fail"
)

// Step operations.
const (
	OpPublish     = "publish"
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
	OpDestroy     = "destroy"
)

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Logging enables advisory log records. Defaults to false.
	Logging bool `yaml:"logging"`

	// LogLevel is the minimum level of the CLI logger: debug, info, warn
	// or error. Defaults to info.
	LogLevel string `yaml:"log_level"`

	// LogFormat is the CLI log encoding: json or text. Defaults to json.
	LogFormat string `yaml:"log_format"`

	// Identity is the subscription identity scheme: sequence or uuid.
	// Defaults to sequence.
	Identity string `yaml:"identity"`

	// PanicPolicy selects what a panicking callback does to a publish:
	// propagate or recover. Defaults to propagate.
	PanicPolicy string `yaml:"panic_policy"`

	// Subscribers are registered, in order, before the first step runs.
	Subscribers []SubscriberConfig `yaml:"subscribers"`

	// Steps are executed in order after the subscribers are registered.
	Steps []StepConfig `yaml:"steps"`
}

// SubscriberConfig declares a named scenario subscriber.
type SubscriberConfig struct {
	// Name identifies the subscriber in steps and in the run summary.
	Name string `yaml:"name"`

	// Channel is the channel the subscriber listens on.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Channel string `yaml:"channel"`

	// Action is what the subscriber does with each delivery: print writes
	// it to the output, count only tallies it, fail panics. Defaults to print.
	Action string `yaml:"action"`

	// Prefix is prepended to printed deliveries. Defaults to "[<name>]".
	Prefix string `yaml:"prefix"`
}

// StepConfig is one scripted operation.
type StepConfig struct {
	// Op is publish, subscribe, unsubscribe or destroy.
	Op string `yaml:"op"`

	// Channel is the target of publish and destroy.
	// Supports environment variable substitution.
	Channel string `yaml:"channel"`

	// Subscriber names the declared subscriber for subscribe and unsubscribe.
	Subscriber string `yaml:"subscriber"`

	// Data is the publish payload. Any YAML value; plain strings support
	// environment variable substitution.
	Data any `yaml:"data"`
}

// envOverrides holds DISPATCHER_* environment variables. Empty means unset.
type envOverrides struct {
	Logging     string `env:"LOGGING"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT"`
	Identity    string `env:"IDENTITY"`
	PanicPolicy string `env:"PANIC_POLICY"`
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// DISPATCHER_* environment variables override the parsed settings, defaults
// are applied, ${VAR} patterns in channel names, prefixes and string payloads
// are expanded, and the result is validated.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv overlays DISPATCHER_* environment variables.
func (c *Config) applyEnv() error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.Logging != "" {
		on, err := strconv.ParseBool(o.Logging)
		if err != nil {
			return fmt.Errorf("%sLOGGING: invalid boolean %q", EnvPrefix, o.Logging)
		}
		c.Logging = on
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.Identity != "" {
		c.Identity = o.Identity
	}
	if o.PanicPolicy != "" {
		c.PanicPolicy = o.PanicPolicy
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.Identity == "" {
		c.Identity = "sequence"
	}
	if c.PanicPolicy == "" {
		c.PanicPolicy = "propagate"
	}
	for i := range c.Subscribers {
		s := &c.Subscribers[i]
		if s.Action == "" {
			s.Action = ActionPrint
		}
		if s.Prefix == "" {
			s.Prefix = "[" + s.Name + "]"
		}
	}
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}

	switch c.Identity {
	case "sequence", "uuid":
	default:
		return fmt.Errorf("identity must be sequence or uuid, got %q", c.Identity)
	}

	switch c.PanicPolicy {
	case "propagate", "recover":
	default:
		return fmt.Errorf("panic_policy must be propagate or recover, got %q", c.PanicPolicy)
	}

	names := make(map[string]struct{}, len(c.Subscribers))
	for i := range c.Subscribers {
		s := &c.Subscribers[i]

		if s.Name == "" {
			return fmt.Errorf("subscribers[%d]: name is required", i)
		}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("subscribers[%d] (%s): duplicate subscriber name", i, s.Name)
		}
		names[s.Name] = struct{}{}

		if s.Channel == "" {
			return fmt.Errorf("subscribers[%d] (%s): channel is required", i, s.Name)
		}
		expanded, err := expandEnvVars(s.Channel)
		if err != nil {
			return fmt.Errorf("subscribers[%d] (%s): channel: %w", i, s.Name, err)
		}
		s.Channel = expanded

		expanded, err = expandEnvVars(s.Prefix)
		if err != nil {
			return fmt.Errorf("subscribers[%d] (%s): prefix: %w", i, s.Name, err)
		}
		s.Prefix = expanded

		switch s.Action {
		case ActionPrint, ActionCount, ActionFail:
		default:
			return fmt.Errorf("subscribers[%d] (%s): action must be print, count, or fail, got %q", i, s.Name, s.Action)
		}
	}

	for i := range c.Steps {
		st := &c.Steps[i]

		switch st.Op {
		case OpPublish, OpDestroy:
			if st.Channel == "" {
				return fmt.Errorf("steps[%d] (%s): channel is required", i, st.Op)
			}
			expanded, err := expandEnvVars(st.Channel)
			if err != nil {
				return fmt.Errorf("steps[%d] (%s): channel: %w", i, st.Op, err)
			}
			st.Channel = expanded

			if s, ok := st.Data.(string); ok {
				expanded, err := expandEnvVars(s)
				if err != nil {
					return fmt.Errorf("steps[%d] (%s): data: %w", i, st.Op, err)
				}
				st.Data = expanded
			}

		case OpSubscribe, OpUnsubscribe:
			if st.Subscriber == "" {
				return fmt.Errorf("steps[%d] (%s): subscriber is required", i, st.Op)
			}
			if _, ok := names[st.Subscriber]; !ok {
				return fmt.Errorf("steps[%d] (%s): unknown subscriber %q", i, st.Op, st.Subscriber)
			}

		case "":
			return fmt.Errorf("steps[%d]: op is required", i)

		default:
			return fmt.Errorf("steps[%d]: op must be publish, subscribe, unsubscribe, or destroy, got %q", i, st.Op)
		}
	}

	return nil
}
