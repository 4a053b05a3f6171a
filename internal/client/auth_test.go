package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/instalite/instalite-go/internal/core/domain"
	"github.com/instalite/instalite-go/internal/session"
)

func TestAuthClient_LoginSuccess(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["usernameOrEmail"] != "alice" || payload["password"] != "Passw0rd!" {
			t.Errorf("unexpected payload: %v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc","message":"Login successful"}`))
	}), "")

	auth := NewAuthClient(c, zerolog.Nop())
	sess, err := auth.Login(context.Background(), "alice", "Passw0rd!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token != "abc" || sess.Message != "Login successful" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestAuthClient_LoginFailurePassesBackendError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}), "")

	auth := NewAuthClient(c, zerolog.Nop())
	if _, err := auth.Login(context.Background(), "alice", "wrong"); err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("err = %v, want invalid credentials", err)
	}
}

func TestAuthClient_RegisterRejectsWeakPasswordLocally(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}), "")

	auth := NewAuthClient(c, zerolog.Nop())
	_, err := auth.Register(context.Background(), "a@example.com", "password")
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if hits.Load() != 0 {
		t.Fatal("weak password must not reach the network")
	}
}

func TestAuthClient_RegisterRejectsBadEmailLocally(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}), "")

	auth := NewAuthClient(c, zerolog.Nop())
	if _, err := auth.Register(context.Background(), "not-an-email", "Passw0rd!"); !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if hits.Load() != 0 {
		t.Fatal("bad email must not reach the network")
	}
}

func TestAuthClient_RegisterFallbackMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), "")

	auth := NewAuthClient(c, zerolog.Nop())
	if _, err := auth.Register(context.Background(), "a@example.com", "Passw0rd!"); err == nil || err.Error() != "Registration failed." {
		t.Fatalf("err = %v, want registration fallback", err)
	}
}

func TestAuthClient_LogoutIsBestEffort(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // backend unreachable

	tokens := session.NewMemoryStore()
	c := New(Config{BaseURL: srv.URL}, tokens, zerolog.Nop())
	auth := NewAuthClient(c, zerolog.Nop())

	// Must not panic, block, or surface an error.
	auth.Logout(context.Background(), "abc")
}

func TestAuthClient_VerifyEmailFallback(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("not json"))
	}), "")

	auth := NewAuthClient(c, zerolog.Nop())
	if _, err := auth.VerifyEmail(context.Background(), "bad-token"); err == nil || err.Error() != "Email verification failed." {
		t.Fatalf("err = %v, want verification fallback", err)
	}
}

func TestAuthClient_ValidateToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer good" {
			_, _ = w.Write([]byte(`{"message":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}), "")

	auth := NewAuthClient(c, zerolog.Nop())
	if !auth.ValidateToken(context.Background(), "good") {
		t.Fatal("valid token reported invalid")
	}
	if auth.ValidateToken(context.Background(), "bad") {
		t.Fatal("rejected token reported valid")
	}
}
