package dispatcher

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jpalmerr/dispatcher/internal/ident"
)

// IdentityScheme names a built-in subscription identity format.
type IdentityScheme string

const (
	// IdentitySequence issues decimal identities from a process-wide
	// monotonic sequence. This is the default.
	IdentitySequence IdentityScheme = "sequence"

	// IdentityUUID issues random UUID identities.
	IdentityUUID IdentityScheme = "uuid"
)

// PanicPolicy controls what happens when a callback panics during
// [Dispatcher.Publish].
type PanicPolicy int

const (
	// PanicPropagate lets the panic unwind out of Publish. Subscribers after
	// the panicking one are not invoked for that publish. This is the default.
	PanicPropagate PanicPolicy = iota

	// PanicRecover recovers the panic, logs it with a correlation ID and
	// continues with the next subscriber.
	PanicRecover
)

// String returns the policy name used in configuration files.
func (p PanicPolicy) String() string {
	switch p {
	case PanicPropagate:
		return "propagate"
	case PanicRecover:
		return "recover"
	default:
		return fmt.Sprintf("PanicPolicy(%d)", int(p))
	}
}

// IDGenerator produces subscription identities. Implementations must return
// a string never returned before and must be safe for concurrent use.
type IDGenerator interface {
	Next() string
}

// dConfig holds mutable state during Dispatcher construction.
type dConfig struct {
	logger      *slog.Logger
	logging     bool
	ids         IDGenerator
	panicPolicy PanicPolicy
}

// Option is a function that configures a [Dispatcher] during construction.
//
// Options return an error if validation fails; [New] stops at the first
// failing option.
//
// Built-in options: [WithLogger], [WithLogging], [WithIdentityScheme],
// [WithIDGenerator], [WithPanicPolicy].
type Option func(*dConfig) error

// WithLogger sets the [slog.Logger] that receives diagnostic records.
//
// If not specified, [slog.Default] is used. Advisory records are only written
// while logging is enabled (see [WithLogging] and [Dispatcher.SetLogging]);
// recovered panics are always written.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *dConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithLogging sets the initial state of the advisory logging toggle.
// Defaults to false.
func WithLogging(on bool) Option {
	return func(cfg *dConfig) error {
		cfg.logging = on
		return nil
	}
}

// WithIdentityScheme selects a built-in identity format.
//
// Returns [ErrUnknownIdentityScheme] for names other than
// [IdentitySequence] and [IdentityUUID].
func WithIdentityScheme(scheme IdentityScheme) Option {
	return func(cfg *dConfig) error {
		switch scheme {
		case IdentitySequence:
			cfg.ids = ident.Process()
		case IdentityUUID:
			cfg.ids = ident.UUID{}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownIdentityScheme, scheme)
		}
		return nil
	}
}

// WithIDGenerator installs a custom identity generator.
//
// Returns an error if the generator is nil.
func WithIDGenerator(g IDGenerator) Option {
	return func(cfg *dConfig) error {
		if g == nil {
			return errors.New("id generator cannot be nil")
		}
		cfg.ids = g
		return nil
	}
}

// WithPanicPolicy selects how callback panics are handled during publish.
//
// Returns [ErrUnknownPanicPolicy] for values other than [PanicPropagate]
// and [PanicRecover].
func WithPanicPolicy(p PanicPolicy) Option {
	return func(cfg *dConfig) error {
		switch p {
		case PanicPropagate, PanicRecover:
			cfg.panicPolicy = p
			return nil
		default:
			return fmt.Errorf("%w: %d", ErrUnknownPanicPolicy, int(p))
		}
	}
}
