package dispatcher

import "errors"

var (
	// ErrInvalidCallback is returned by the Subscribe family when the callback
	// is nil or is not a function the dispatcher knows how to invoke.
	// Nothing is registered when it is returned.
	ErrInvalidCallback = errors.New("callback must be a function")

	// ErrUnknownIdentityScheme is returned by [WithIdentityScheme] for an
	// unrecognized scheme name.
	ErrUnknownIdentityScheme = errors.New("unknown identity scheme")

	// ErrUnknownPanicPolicy is returned by [WithPanicPolicy] for an
	// unrecognized policy.
	ErrUnknownPanicPolicy = errors.New("unknown panic policy")
)
