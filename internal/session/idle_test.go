package session

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestIdleGuard_ExpiryClearsTokenAndNotifies(t *testing.T) {
	tokens := NewMemoryStore()
	_ = tokens.Set("abc")

	expired := make(chan struct{})
	guard := NewIdleGuard(20*time.Millisecond, tokens, func() { close(expired) }, zerolog.Nop())
	defer guard.Stop()

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("idle guard did not fire")
	}

	if _, ok := tokens.Get(); ok {
		t.Fatal("token should be cleared on idle expiry")
	}
}

func TestIdleGuard_TouchDefersExpiry(t *testing.T) {
	tokens := NewMemoryStore()
	_ = tokens.Set("abc")

	expired := make(chan struct{})
	guard := NewIdleGuard(80*time.Millisecond, tokens, func() { close(expired) }, zerolog.Nop())
	defer guard.Stop()

	// Keep touching well inside the window; the guard must not fire.
	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		guard.Touch()
	}

	select {
	case <-expired:
		t.Fatal("guard fired despite activity")
	default:
	}

	if _, ok := tokens.Get(); !ok {
		t.Fatal("token should survive while active")
	}
}

func TestIdleGuard_StopPreventsExpiry(t *testing.T) {
	tokens := NewMemoryStore()
	_ = tokens.Set("abc")

	guard := NewIdleGuard(30*time.Millisecond, tokens, func() {
		t.Error("callback after Stop")
	}, zerolog.Nop())
	guard.Stop()

	time.Sleep(60 * time.Millisecond)
	if _, ok := tokens.Get(); !ok {
		t.Fatal("token should survive after Stop")
	}
}
