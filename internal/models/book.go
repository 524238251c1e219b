package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Book is a single library entry owned by exactly one user. Ownership is
// enforced by query-time filtering, never by handing out another owner's
// rows. The bigserial primary key doubles as insertion order for listing.
type Book struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	UserID        uuid.UUID                   `gorm:"type:uuid;not null;index:idx_books_user" json:"-"`
	ISBN          string                      `gorm:"size:13;index:idx_books_user_isbn" json:"isbn,omitempty"`
	Title         string                      `gorm:"not null;size:500" json:"title"`
	Author        string                      `gorm:"not null;size:255" json:"author"`
	PublishedDate string                      `gorm:"size:50" json:"publishedDate,omitempty"`
	Description   string                      `gorm:"type:text" json:"description,omitempty"`
	Categories    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"categories"`
	CoverURL      string                      `gorm:"type:text" json:"coverUrl,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}
