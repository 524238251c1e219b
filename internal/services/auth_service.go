package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aaposadas/book-inventory-api/internal/models"
	"github.com/aaposadas/book-inventory-api/internal/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("a valid email address is required")
	ErrNameTooShort       = errors.New("first and last name must be at least 2 characters")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a digit")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dummyHash keeps the unknown-email login path as expensive as a real
// bcrypt comparison, so both failure modes look the same to an observer.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Session is the outcome of a successful authentication step. The handler
// moves Token into the identity cookie; it is never serialized in a body.
type Session struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users  repositories.UserStore
	tokens *TokenService
}

func NewAuthService(users repositories.UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(email, firstName, lastName, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if utf8.RuneCountInString(strings.TrimSpace(firstName)) < 2 ||
		utf8.RuneCountInString(strings.TrimSpace(lastName)) < 2 {
		return nil, ErrNameTooShort
	}
	if !validPassword(password) {
		return nil, ErrWeakPassword
	}

	// Fast-path duplicate check; the unique index on users.email is the
	// actual guarantee if two registrations race.
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: string(hash),
	}

	if err := s.users.Create(&user); err != nil {
		return nil, err
	}

	return s.startSession(&user)
}

func (s *AuthService) Login(email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(user)
}

// Refresh re-validates the presented token and re-fetches the user, so a
// since-deleted account cannot keep rotating a stale identity.
func (s *AuthService) Refresh(rawToken string) (*Session, error) {
	identity, err := s.tokens.Validate(rawToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.startSession(user)
}

func (s *AuthService) startSession(user *models.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: *user, Token: token, ExpiresAt: expiresAt}, nil
}

// NormalizeEmail lowercases and trims so case-variant duplicates collapse
// to one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
