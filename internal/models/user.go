package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. The email is stored normalized (trimmed,
// lowercase) and the unique index is the real defense against duplicate
// registrations racing past the application-level pre-check.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex:idx_users_email" json:"email"`
	FirstName    string    `gorm:"not null;size:100" json:"firstName"`
	LastName     string    `gorm:"not null;size:100" json:"lastName"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
