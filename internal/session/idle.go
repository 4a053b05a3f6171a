package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/instalite/instalite-go/internal/core/ports"
)

// IdleGuard terminates the session after a period without user interaction,
// independent of any server-side token expiry. On expiry it clears the
// TokenStore and fires onExpire so the shell can route back to login. The
// guard stays usable afterwards: the next Touch re-arms it for a new session.
type IdleGuard struct {
	timeout  time.Duration
	tokens   ports.TokenStore
	onExpire func()
	log      zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewIdleGuard creates and arms an IdleGuard. onExpire may be nil.
func NewIdleGuard(timeout time.Duration, tokens ports.TokenStore, onExpire func(), log zerolog.Logger) *IdleGuard {
	g := &IdleGuard{
		timeout:  timeout,
		tokens:   tokens,
		onExpire: onExpire,
		log:      log,
	}
	g.timer = time.AfterFunc(timeout, g.expire)
	return g
}

// Touch records user interaction and resets the inactivity window.
func (g *IdleGuard) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}
	if !g.timer.Stop() {
		// Timer already fired; re-arm for the next session.
		g.timer = time.AfterFunc(g.timeout, g.expire)
		return
	}
	g.timer.Reset(g.timeout)
}

// Stop releases the timer. The guard cannot be restarted afterwards.
func (g *IdleGuard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = true
	g.timer.Stop()
}

func (g *IdleGuard) expire() {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()

	if err := g.tokens.Clear(); err != nil {
		g.log.Warn().Err(err).Msg("idle guard: clearing token failed")
	}
	g.log.Info().Dur("timeout", g.timeout).Msg("session ended after inactivity")

	if g.onExpire != nil {
		g.onExpire()
	}
}
