package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New("test-secret", time.Hour, zerolog.Nop())
}

func doJSON(t *testing.T, srv *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func registerVerified(t *testing.T, srv *Server, email, password string) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"email":"`+email+`","password":"`+password+`"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	verify, ok := srv.VerificationToken(email)
	if !ok {
		t.Fatal("no verification token")
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/auth/verify-email?encodedToken="+verify, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login",
		`{"usernameOrEmail":"`+email+`","password":"`+password+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	return out.Token
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"email":"not-an-email","password":"Passw0rd!"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"email":"a@example.com","password":"password"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	srv := newTestServer(t)
	body := `{"email":"a@example.com","password":"Passw0rd!"}`
	if rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rec.Code)
	}
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", body, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "email already registered" {
		t.Fatalf("error = %q", msg)
	}
}

func TestLogin_UnverifiedAccountIsForbidden(t *testing.T) {
	srv := newTestServer(t)
	if rec := doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"email":"a@example.com","password":"Passw0rd!"}`, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login",
		`{"usernameOrEmail":"a@example.com","password":"Passw0rd!"}`, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", rec.Code)
	}
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	srv := newTestServer(t)
	registerVerified(t, srv, "a@example.com", "Passw0rd!")
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login",
		`{"usernameOrEmail":"a@example.com","password":"Wr0ngPass!"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "invalid credentials" {
		t.Fatalf("error = %q", msg)
	}
}

func TestVerifyEmail_RequiresToken(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/auth/verify-email", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/auth/verify-email?encodedToken=bogus", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bogus token code = %d, want 400", rec.Code)
	}
}

func TestRequestReset_UniformAnswerForUnknownEmail(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/reset-password",
		`{"email":"nobody@example.com"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Check your email") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/homepage", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/homepage", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	srv := newTestServer(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec := doJSON(t, srv, http.MethodGet, "/api/homepage", "", signed)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_WrongAlgorithm(t *testing.T) {
	srv := newTestServer(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec := doJSON(t, srv, http.MethodGet, "/api/homepage", "", signed)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	srv := newTestServer(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec := doJSON(t, srv, http.MethodGet, "/api/homepage", "", signed)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestPostLikes_IsPublic(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/post/nope/likes", "", "")
	// No auth required; an unknown post is a plain 404.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", rec.Code)
	}
}
