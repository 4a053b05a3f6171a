package ports

// TokenStore is the single place the session token is read from and written
// to. It is the only cross-component shared mutable resource: read by many
// callers, written by exactly two flows (login success, logout/idle timeout).
type TokenStore interface {
	// Get returns the current token. ok is false when no token is stored.
	// Get has no side effects.
	Get() (token string, ok bool)
	// Set persists the token for the remainder of the session.
	Set(token string) error
	// Clear removes the token. Idempotent.
	Clear() error
}
