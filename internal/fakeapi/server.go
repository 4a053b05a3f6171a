// Package fakeapi is an in-memory Instalite backend speaking the same REST
// surface the real service does. It exists for end-to-end tests and local
// development; it persists nothing and is not a production server.
package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Server wraps the echo instance and the in-memory store.
type Server struct {
	Echo *echo.Echo

	store    *store
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
}

// New builds a ready-to-serve fake backend.
func New(secret string, tokenTTL time.Duration, log zerolog.Logger) *Server {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	s := &Server{
		store:    newStore(),
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Validator = newValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	auth := s.authMiddleware()

	// --- Auth ---
	e.POST("/api/auth/register", s.register)
	e.POST("/api/auth/login", s.login)
	e.POST("/api/auth/logout", s.logout, auth)
	e.GET("/api/auth/verify-email", s.verifyEmail)
	e.POST("/api/auth/reset-password", s.requestReset)
	e.POST("/api/auth/reset-password/confirm", s.confirmReset)
	e.GET("/api/auth/validate-token", s.validateToken, auth)

	// --- Profile ---
	e.GET("/api/profile/edit", s.profileForEdit, auth)
	e.GET("/api/profile", s.profileWithPosts, auth)
	e.PUT("/api/profile/update", s.updateProfile, auth)
	e.GET("/api/profile/check-username", s.checkUsername, auth)

	// --- Feed and posts ---
	e.GET("/api/homepage", s.homepage, auth)
	e.POST("/api/post/store", s.createPost, auth)
	e.DELETE("/api/post/:id", s.deletePost, auth)
	e.POST("/api/post/toggle-like", s.toggleLike, auth)
	e.POST("/api/post/:id/comment", s.createComment, auth)
	e.DELETE("/api/post/comment/:id", s.deleteComment, auth)
	e.GET("/api/post/:id", s.postDetail, auth)
	e.GET("/api/post/:id/likes", s.postLikes)

	// --- Follow requests ---
	e.POST("/api/mutual/send", s.sendFollow, auth)
	e.GET("/api/mutual/pending", s.pendingFollows, auth)
	e.PUT("/api/mutual/accept", s.acceptFollow, auth)
	e.DELETE("/api/mutual/reject", s.rejectFollow, auth)

	s.Echo = e
	return s
}

// VerificationToken exposes the pending email-verification token of an
// account. A real backend emails this; tests read it here.
func (s *Server) VerificationToken(email string) (string, bool) {
	return s.store.verificationTokenFor(email)
}

// ResetToken exposes the pending password-reset token of an account. Test
// hook; see VerificationToken.
func (s *Server) ResetToken(email string) (string, bool) {
	return s.store.resetTokenFor(email)
}

// authMiddleware validates the bearer JWT and injects the user id.
func (s *Server) authMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(s.secret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}
			c.Set("user_id", sub)

			return next(c)
		}
	}
}

func (s *Server) issueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// callerID extracts the user id injected by the auth middleware.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
