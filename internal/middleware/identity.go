package middleware

import (
	"errors"

	"github.com/aaposadas/book-inventory-api/internal/config"
	"github.com/aaposadas/book-inventory-api/internal/dto"
	"github.com/aaposadas/book-inventory-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityKey = "identity"

// RequireIdentity runs after JWTProtected. It checks the issuer and
// audience claims and stores a typed Identity in the request locals, so
// handlers never touch raw JWT claims.
func RequireIdentity(cfg *config.Config) fiber.Handler {
	unauthorized := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Unauthorized: invalid or expired token",
		})
	}

	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return unauthorized(c)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}

		issuer, err := claims.GetIssuer()
		if err != nil || issuer != cfg.JWTIssuer {
			return unauthorized(c)
		}
		audience, err := claims.GetAudience()
		if err != nil || !containsAudience(audience, cfg.JWTAudience) {
			return unauthorized(c)
		}

		subject, err := claims.GetSubject()
		if err != nil {
			return unauthorized(c)
		}
		userID, err := uuid.Parse(subject)
		if err != nil {
			return unauthorized(c)
		}

		identity := &services.Identity{UserID: userID}
		if email, ok := claims["email"].(string); ok {
			identity.Email = email
		}
		if first, ok := claims["first_name"].(string); ok {
			identity.FirstName = first
		}
		if last, ok := claims["last_name"].(string); ok {
			identity.LastName = last
		}
		if jti, ok := claims["jti"].(string); ok {
			identity.TokenID = jti
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// GetIdentity extracts the identity placed by RequireIdentity.
func GetIdentity(c *fiber.Ctx) (*services.Identity, error) {
	identity, ok := c.Locals(identityKey).(*services.Identity)
	if !ok || identity == nil {
		return nil, errors.New("no identity in context")
	}
	return identity, nil
}

func containsAudience(audience jwt.ClaimStrings, want string) bool {
	for _, a := range audience {
		if a == want {
			return true
		}
	}
	return false
}
