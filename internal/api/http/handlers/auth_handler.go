package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexus-care/complaint-service/internal/api/dto"
	"github.com/nexus-care/complaint-service/internal/auth"
	"github.com/nexus-care/complaint-service/internal/config"
	"github.com/nexus-care/complaint-service/internal/domain"
	"github.com/nexus-care/complaint-service/internal/service"
	apperrors "github.com/nexus-care/complaint-service/pkg/util"
)

// AuthHandler exposes registration, login, logout and password recovery.
type AuthHandler struct {
	auth *service.AuthService
	cfg  config.AuthConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{auth: authService, cfg: cfg}
}

// Register handles POST /register. Success returns the account summary
// only; the caller must log in separately.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Login handles POST /login. Success sets the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, session, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(h.sessionCookie(session.Token, session.ExpiresAt))
	return c.JSON(dto.NewUserResponse(user))
}

// Logout handles POST /logout. It succeeds with or without an active
// session and always clears the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cfg.SessionCookieName)
	if err := h.auth.Logout(c.Context(), token); err != nil {
		return err
	}

	expired := h.sessionCookie("", time.Now().Add(-time.Hour))
	c.Cookie(expired)
	return c.JSON(fiber.Map{"message": "logged out"})
}

// ResetPassword handles POST /reset-password. The endpoint requires only
// the email address; see the open question recorded in DESIGN.md.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ResetPassword(c.Context(), req.Email, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// Session handles GET /session, echoing the authenticated principal.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	return c.JSON(dto.NewUserResponse(principal.User))
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	}
}
