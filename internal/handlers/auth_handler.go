package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/aaposadas/book-inventory-api/internal/config"
	"github.com/aaposadas/book-inventory-api/internal/dto"
	"github.com/aaposadas/book-inventory-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	session, err := h.authService.Register(req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) ||
			errors.Is(err, services.ErrInvalidEmail) ||
			errors.Is(err, services.ErrNameTooShort) ||
			errors.Is(err, services.ErrWeakPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	h.setAuthCookie(c, session)
	return c.JSON(authResponse(session))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	session, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	h.setAuthCookie(c, session)
	return c.JSON(authResponse(session))
}

// Refresh rotates the cookie from a still-valid token. A missing user is a
// 401 like an invalid token, so a deleted account cannot refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	raw := rawToken(c)
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized: invalid or expired token",
		})
	}

	session, err := h.authService.Refresh(raw)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid or expired token",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	h.setAuthCookie(c, session)
	return c.JSON(authResponse(session))
}

// Logout clears the identity cookie. Idempotent: logging out twice is fine.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     config.AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, session *services.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     config.AuthCookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

func authResponse(session *services.Session) dto.AuthResponse {
	return dto.AuthResponse{
		User: dto.UserResponse{
			ID:        session.User.ID,
			Email:     session.User.Email,
			FirstName: session.User.FirstName,
			LastName:  session.User.LastName,
		},
	}
}

func rawToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(config.AuthCookieName); cookie != "" {
		return cookie
	}
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
