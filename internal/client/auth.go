package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/instalite/instalite-go/internal/core/domain"
)

// AuthClient performs the authentication lifecycle. None of its operations
// touch the TokenStore; storing or clearing the token is the caller's job.
type AuthClient struct {
	c        *Client
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthClient(c *Client, log zerolog.Logger) *AuthClient {
	return &AuthClient{c: c, validate: validator.New(), log: log}
}

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type credentialsPayload struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an unverified account. The password policy is enforced
// locally before any network traffic.
func (a *AuthClient) Register(ctx context.Context, email, password string) (string, error) {
	payload := registerPayload{Email: email, Password: password}
	if err := a.validate.Struct(payload); err != nil {
		return "", &domain.ValidationError{Field: "email", Message: "A valid email address is required"}
	}
	if err := domain.ValidatePassword(password); err != nil {
		return "", err
	}

	body, err := jsonBody(payload)
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = a.c.invoke(ctx, call{
		op:          "register",
		method:      http.MethodPost,
		path:        "/api/auth/register",
		fallback:    "Registration failed.",
		body:        body,
		contentType: "application/json",
		out:         &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a bearer token.
func (a *AuthClient) Login(ctx context.Context, usernameOrEmail, password string) (*domain.Session, error) {
	if usernameOrEmail == "" || password == "" {
		return nil, &domain.ValidationError{Field: "credentials", Message: "Username and password are required"}
	}

	body, err := jsonBody(credentialsPayload{UsernameOrEmail: usernameOrEmail, Password: password})
	if err != nil {
		return nil, err
	}

	var session domain.Session
	err = a.c.invoke(ctx, call{
		op:          "login",
		method:      http.MethodPost,
		path:        "/api/auth/login",
		fallback:    "Login failed.",
		body:        body,
		contentType: "application/json",
		out:         &session,
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout notifies the backend best-effort. Failures are logged and
// swallowed: local token clearing must never block on the network.
func (a *AuthClient) Logout(ctx context.Context, token string) {
	err := a.c.invoke(ctx, call{
		op:       "logout",
		method:   http.MethodPost,
		path:     "/api/auth/logout",
		token:    token,
		fallback: "Logout failed.",
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("logout notification failed")
	}
}

// VerifyEmail resolves a single-use email verification payload.
func (a *AuthClient) VerifyEmail(ctx context.Context, encodedToken string) (string, error) {
	var resp messageResponse
	err := a.c.invoke(ctx, call{
		op:       "verify_email",
		method:   http.MethodGet,
		path:     "/api/auth/verify-email",
		query:    url.Values{"encodedToken": {encodedToken}},
		fallback: "Email verification failed.",
		out:      &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RequestPasswordReset starts the two-step reset flow.
func (a *AuthClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if err := a.validate.Var(email, "required,email"); err != nil {
		return "", &domain.ValidationError{Field: "email", Message: "A valid email address is required"}
	}

	body, err := jsonBody(map[string]string{"email": email})
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = a.c.invoke(ctx, call{
		op:          "request_reset",
		method:      http.MethodPost,
		path:        "/api/auth/reset-password",
		fallback:    "Failed to send reset email. Please try again.",
		body:        body,
		contentType: "application/json",
		out:         &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ConfirmPasswordReset completes the reset flow with the emailed token. The
// token is single-use and time-limited, enforced server-side.
func (a *AuthClient) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return "", err
	}

	body, err := jsonBody(map[string]string{"token": token, "newPassword": newPassword})
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = a.c.invoke(ctx, call{
		op:          "confirm_reset",
		method:      http.MethodPost,
		path:        "/api/auth/reset-password/confirm",
		fallback:    "Failed to reset password. Please try again.",
		body:        body,
		contentType: "application/json",
		out:         &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ValidateToken reports whether the backend still accepts the token. Any
// failure, transport or otherwise, counts as invalid.
func (a *AuthClient) ValidateToken(ctx context.Context, token string) bool {
	err := a.c.invoke(ctx, call{
		op:       "validate_token",
		method:   http.MethodGet,
		path:     "/api/auth/validate-token",
		token:    token,
		fallback: "Token validation failed.",
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		a.log.Debug().Err(err).Msg("token validation failed")
	}
	return err == nil
}
