package services

import (
	"errors"
	"time"

	"github.com/aaposadas/book-inventory-api/internal/config"
	"github.com/aaposadas/book-inventory-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenNotConfigured = errors.New("token signing is not configured")
	ErrMissingUserID      = errors.New("user has no assigned id")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Identity is the validated claim set of a request. Stateless: the issuer
// and the validator share only the signing secret.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
	LastName  string
	TokenID   string
}

type identityClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-bounded identity tokens.
type TokenService struct {
	cfg *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

// Issue signs an HS256 token for the user. The jti claim is a fresh random
// id so every issued token is distinct even within the same second.
func (s *TokenService) Issue(user *models.User) (string, time.Time, error) {
	if len(s.cfg.JWTSecret) < 32 || s.cfg.JWTIssuer == "" || s.cfg.JWTAudience == "" || s.cfg.JWTExpiryMinutes <= 0 {
		return "", time.Time{}, ErrTokenNotConfigured
	}
	if user.ID == uuid.Nil {
		return "", time.Time{}, ErrMissingUserID
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.JWTExpiryMinutes) * time.Minute)

	claims := identityClaims{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{s.cfg.JWTAudience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate verifies signature, issuer, audience and expiry. Leeway is zero:
// a token presented at or after its expiry timestamp is rejected.
func (s *TokenService) Validate(raw string) (*Identity, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.JWTIssuer),
		jwt.WithAudience(s.cfg.JWTAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:    userID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		TokenID:   claims.ID,
	}, nil
}
