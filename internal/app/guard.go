// Package app is the shell around the API clients: route guarding, view
// navigation and the post-login landing decision.
package app

import (
	"time"

	"github.com/instalite/instalite-go/internal/core/ports"
	"github.com/instalite/instalite-go/internal/session"
)

// Guard decides whether the current session entitles access to protected
// views. It holds no state of its own: every check re-derives the answer
// from the TokenStore at that moment.
type Guard struct {
	tokens ports.TokenStore
	strict bool
	now    func() time.Time
}

// NewGuard creates a Guard. In lenient mode (strict=false) only token
// presence is checked and an expired-but-present token passes, failing later
// at the API boundary. Strict mode additionally rejects a JWT whose exp
// claim has passed.
func NewGuard(tokens ports.TokenStore, strict bool) *Guard {
	return &Guard{tokens: tokens, strict: strict, now: time.Now}
}

// Allow reports whether a protected view may render right now.
func (g *Guard) Allow() bool {
	token, ok := g.tokens.Get()
	if !ok {
		return false
	}
	if g.strict && session.Expired(token, g.now()) {
		return false
	}
	return true
}
