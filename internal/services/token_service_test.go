package services

import (
	"strings"
	"testing"
	"time"

	"github.com/aaposadas/book-inventory-api/internal/config"
	"github.com/aaposadas/book-inventory-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenConfig() *config.Config {
	return &config.Config{
		JWTSecret:        strings.Repeat("k", 32),
		JWTIssuer:        "book-inventory-api",
		JWTAudience:      "book-inventory-client",
		JWTExpiryMinutes: 60,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:        uuid.New(),
		Email:     "reader@example.com",
		FirstName: "Avid",
		LastName:  "Reader",
	}
}

func TestIssueAndValidate_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(tokenConfig())
	user := testUser()

	token, expiresAt, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), expiresAt, 5*time.Second)

	identity, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "reader@example.com", identity.Email)
	assert.Equal(t, "Avid", identity.FirstName)
	assert.Equal(t, "Reader", identity.LastName)
	assert.NotEmpty(t, identity.TokenID)
}

func TestIssue_FreshTokenIDPerToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(tokenConfig())
	user := testUser()

	first, _, err := svc.Issue(user)
	require.NoError(t, err)
	second, _, err := svc.Issue(user)
	require.NoError(t, err)

	idFirst, err := svc.Validate(first)
	require.NoError(t, err)
	idSecond, err := svc.Validate(second)
	require.NoError(t, err)
	assert.NotEqual(t, idFirst.TokenID, idSecond.TokenID)
}

func TestIssue_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"short secret", func(c *config.Config) { c.JWTSecret = "too-short" }},
		{"missing issuer", func(c *config.Config) { c.JWTIssuer = "" }},
		{"missing audience", func(c *config.Config) { c.JWTAudience = "" }},
		{"non-positive expiry", func(c *config.Config) { c.JWTExpiryMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tokenConfig()
			tt.mutate(cfg)
			_, _, err := NewTokenService(cfg).Issue(testUser())
			assert.ErrorIs(t, err, ErrTokenNotConfigured)
		})
	}
}

func TestIssue_MissingUserID(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.ID = uuid.Nil
	_, _, err := NewTokenService(tokenConfig()).Issue(user)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestValidate_ExpiredWithZeroGrace(t *testing.T) {
	t.Parallel()

	cfg := tokenConfig()
	svc := NewTokenService(cfg)

	// Sign a token whose expiry is already in the past; even one second
	// counts, there is no leeway.
	for _, expiredBy := range []time.Duration{time.Second, time.Hour} {
		claims := identityClaims{
			Email: "reader@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				Issuer:    cfg.JWTIssuer,
				Audience:  jwt.ClaimStrings{cfg.JWTAudience},
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-expiredBy)),
			},
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
		require.NoError(t, err)

		_, err = svc.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenService(tokenConfig()).Issue(testUser())
	require.NoError(t, err)

	other := tokenConfig()
	other.JWTSecret = strings.Repeat("x", 32)
	_, err = NewTokenService(other).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongIssuerOrAudience(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenService(tokenConfig()).Issue(testUser())
	require.NoError(t, err)

	wrongIssuer := tokenConfig()
	wrongIssuer.JWTIssuer = "someone-else"
	_, err = NewTokenService(wrongIssuer).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongAudience := tokenConfig()
	wrongAudience.JWTAudience = "another-client"
	_, err = NewTokenService(wrongAudience).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	cfg := tokenConfig()
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService(cfg).Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(tokenConfig()).Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
