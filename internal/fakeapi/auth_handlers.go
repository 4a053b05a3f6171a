package fakeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/instalite/instalite-go/internal/core/domain"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u, verify, err := s.store.createUser(req.Email, string(hash))
	if err != nil {
		return err
	}
	s.log.Info().Str("email", u.Email).Str("verify_token", verify).Msg("account registered")

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Registration successful. Please check your email to verify your account.",
	})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := s.store.userByLogin(req.UsernameOrEmail)
	if err != nil {
		return errInvalidCredentials
	}
	if !u.Verified {
		return errEmailNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return errInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token":   token,
		"message": "Login successful",
	})
}

func (s *Server) logout(c echo.Context) error {
	// Stateless tokens: nothing to revoke in the fake. Acknowledge so the
	// client's best-effort call succeeds.
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) verifyEmail(c echo.Context) error {
	token := c.QueryParam("encodedToken")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "encodedToken is required")
	}
	if err := s.store.verifyEmail(token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Email verified. You can now log in."})
}

func (s *Server) requestReset(c echo.Context) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := s.store.issueResetToken(req.Email)
	if err == nil {
		s.log.Info().Str("email", req.Email).Str("reset_token", token).Msg("password reset requested")
	}
	// Unknown addresses get the same answer as known ones.
	return c.JSON(http.StatusOK, map[string]string{"message": "Check your email for reset instructions."})
}

func (s *Server) confirmReset(c echo.Context) error {
	var req struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := s.store.consumeResetToken(req.Token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.store.setPassword(userID, string(hash))

	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successful. You can now log in."})
}

func (s *Server) validateToken(c echo.Context) error {
	if _, err := callerID(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
}
