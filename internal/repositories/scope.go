package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches an owner-scoped lookup.
var ErrNotFound = errors.New("record not found")

// ForOwner returns a GORM scope that filters by the owning user's id.
// Every book read, update and delete goes through it.
func ForOwner(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
