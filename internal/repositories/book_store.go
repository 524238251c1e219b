package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aaposadas/book-inventory-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookFilter narrows an owner-scoped listing. Limit/Offset arrive already
// clamped by the service layer.
type BookFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

type BookStore interface {
	Create(book *models.Book) error
	FindByID(userID uuid.UUID, id uint) (*models.Book, error)
	FindByISBN(userID uuid.UUID, isbn string) (*models.Book, error)
	List(userID uuid.UUID, filter BookFilter) ([]models.Book, int64, error)
	Update(book *models.Book) error
	Delete(userID uuid.UUID, id uint) (int64, error)
}

type GormBookStore struct {
	db *gorm.DB
}

func NewGormBookStore(db *gorm.DB) *GormBookStore {
	return &GormBookStore{db: db}
}

func (s *GormBookStore) Create(book *models.Book) error {
	if err := s.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (s *GormBookStore) FindByID(userID uuid.UUID, id uint) (*models.Book, error) {
	var book models.Book
	err := s.db.Scopes(ForOwner(userID)).First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (s *GormBookStore) FindByISBN(userID uuid.UUID, isbn string) (*models.Book, error) {
	var book models.Book
	err := s.db.Scopes(ForOwner(userID)).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// List returns one page ordered by descending id (newest first) and the
// total matching count before pagination.
func (s *GormBookStore) List(userID uuid.UUID, filter BookFilter) ([]models.Book, int64, error) {
	query := s.db.Model(&models.Book{}).Scopes(ForOwner(userID))

	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(author) LIKE ?)", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where(datatypes.JSONArrayQuery("categories").Contains(filter.Category))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	books := []models.Book{}
	err := query.Order("id DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// likeEscaper neutralizes LIKE metacharacters so user input only ever
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Update replaces the mutable columns only. id, user_id and created_at are
// never part of the column list.
func (s *GormBookStore) Update(book *models.Book) error {
	result := s.db.Model(&models.Book{}).
		Where("id = ? AND user_id = ?", book.ID, book.UserID).
		Select("title", "author", "published_date", "description", "categories", "cover_url", "isbn").
		Updates(book)
	if result.Error != nil {
		return fmt.Errorf("failed to update book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormBookStore) Delete(userID uuid.UUID, id uint) (int64, error) {
	result := s.db.Scopes(ForOwner(userID)).Where("id = ?", id).Delete(&models.Book{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete book: %w", result.Error)
	}
	return result.RowsAffected, nil
}
