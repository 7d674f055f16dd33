package common

import "errors"

var (
	// Local input errors. Never sent over the network.
	ErrValidation = errors.New("validation error")

	// Second-factor resend attempted while the cooldown is still running,
	// or the server answered 429.
	ErrThrottled = errors.New("too many requests")

	// The server rejected the credentials or the second-factor code.
	ErrUnauthorized = errors.New("unauthorized")

	// The account authenticated but is not an administrator.
	ErrRoleRejected = errors.New("access denied: administrator role required")

	// Transport or server failure, distinct from an authentication rejection.
	ErrUnavailable = errors.New("server unavailable")

	// A stored token failed validation at startup.
	ErrStaleSession = errors.New("stale session")

	// The server answered 2xx with a payload that could not be understood.
	ErrBadResponse = errors.New("unexpected server response")

	// A session operation was invoked from a phase that does not allow it.
	ErrInvalidTransition = errors.New("invalid session transition")
)
