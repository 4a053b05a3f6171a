package domain

import "errors"

// ErrUnauthenticated is returned locally when a protected call is attempted
// with no session token present. No network request is made in that case.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrAuthRejected is returned when the backend rejects the session token on
// an authorized call (expired or invalid). Callers should clear the token
// and route back to login.
var ErrAuthRejected = errors.New("authorization rejected")

// ErrRequestInFlight is returned when an identical mutation is attempted
// while a previous one is still pending.
var ErrRequestInFlight = errors.New("request already in flight")

// ValidationError reports a client-side input rejection. The request never
// reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
