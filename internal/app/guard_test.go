package app

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/instalite/instalite-go/internal/session"
)

func TestGuard_LenientChecksPresenceOnly(t *testing.T) {
	tokens := session.NewMemoryStore()
	guard := NewGuard(tokens, false)

	if guard.Allow() {
		t.Fatal("empty store must not pass the guard")
	}

	// An expired JWT still passes in lenient mode; the API boundary is the
	// authority on validity.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	_ = tokens.Set(signed)
	if !guard.Allow() {
		t.Fatal("lenient guard must accept a present token regardless of expiry")
	}
}

func TestGuard_StrictRejectsExpiredJWT(t *testing.T) {
	tokens := session.NewMemoryStore()
	guard := NewGuard(tokens, true)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	_ = tokens.Set(signed)

	if guard.Allow() {
		t.Fatal("strict guard must reject an expired token")
	}

	// Opaque tokens fall back to presence-only even in strict mode.
	_ = tokens.Set("opaque-token")
	if !guard.Allow() {
		t.Fatal("strict guard must accept a non-JWT token")
	}
}

func TestNavigator_RedirectsToLoginWithoutToken(t *testing.T) {
	tokens := session.NewMemoryStore()
	nav := NewNavigator(NewGuard(tokens, false), zerolog.Nop())

	loginRendered := false
	nav.Register(View{Name: LoginView, Render: func(context.Context) error {
		loginRendered = true
		return nil
	}})
	nav.Register(View{Name: HomeView, Protected: true, Render: func(context.Context) error {
		t.Fatal("protected view rendered without a session")
		return nil
	}})

	rendered, err := nav.Go(context.Background(), HomeView)
	if err != nil {
		t.Fatalf("Go: %v", err)
	}
	if rendered != LoginView {
		t.Fatalf("rendered %q, want %q", rendered, LoginView)
	}
	if !loginRendered {
		t.Fatal("login view was not rendered")
	}
}

func TestNavigator_ReevaluatesOnEveryNavigation(t *testing.T) {
	tokens := session.NewMemoryStore()
	nav := NewNavigator(NewGuard(tokens, false), zerolog.Nop())

	homeRenders := 0
	nav.Register(View{Name: LoginView})
	nav.Register(View{Name: HomeView, Protected: true, Render: func(context.Context) error {
		homeRenders++
		return nil
	}})

	_ = tokens.Set("abc")
	if rendered, _ := nav.Go(context.Background(), HomeView); rendered != HomeView {
		t.Fatalf("rendered %q, want %q", rendered, HomeView)
	}

	// Logout invalidates the next navigation; the guard holds no cache.
	_ = tokens.Clear()
	if rendered, _ := nav.Go(context.Background(), HomeView); rendered != LoginView {
		t.Fatalf("rendered %q after logout, want %q", rendered, LoginView)
	}
	if homeRenders != 1 {
		t.Fatalf("home rendered %d times, want 1", homeRenders)
	}
}

func TestNavigator_UnknownView(t *testing.T) {
	nav := NewNavigator(NewGuard(session.NewMemoryStore(), false), zerolog.Nop())
	if _, err := nav.Go(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown view")
	}
}
