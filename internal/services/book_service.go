package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/aaposadas/book-inventory-api/internal/dto"
	"github.com/aaposadas/book-inventory-api/internal/models"
	"github.com/aaposadas/book-inventory-api/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrInvalidISBN    = errors.New("ISBN must be 10 or 13 digits")
	ErrDuplicateISBN  = errors.New("a book with this ISBN already exists in your collection")
	ErrTitleRequired  = errors.New("title is required")
	ErrAuthorRequired = errors.New("author is required")
)

var isbnPattern = regexp.MustCompile(`^(\d{10}|\d{13})$`)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BookPage is one listing page plus the metadata the handler exposes as
// pagination headers.
type BookPage struct {
	Items    []models.Book
	Total    int64
	Page     int
	PageSize int
}

type BookService struct {
	books  repositories.BookStore
	lookup MetadataLookup
}

func NewBookService(books repositories.BookStore, lookup MetadataLookup) *BookService {
	return &BookService{books: books, lookup: lookup}
}

// List is always owner-scoped. Out-of-range paging input silently resets
// to defaults instead of erroring.
func (s *BookService) List(userID uuid.UUID, page, pageSize int, search, category string) (*BookPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	items, total, err := s.books.List(userID, repositories.BookFilter{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		// An empty page is still a JSON array, never null
		items = []models.Book{}
	}

	return &BookPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// GetByID returns not-found for cross-user lookups; it never confirms that
// an id exists under another account.
func (s *BookService) GetByID(userID uuid.UUID, id uint) (*models.Book, error) {
	book, err := s.books.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// CreateFromISBN builds a book from the first matching catalog volume. The
// ISBN is a soft unique key scoped per user; on conflict the existing
// record is returned alongside ErrDuplicateISBN.
func (s *BookService) CreateFromISBN(userID uuid.UUID, rawISBN string) (*models.Book, error) {
	isbn := NormalizeISBN(rawISBN)
	if !isbnPattern.MatchString(isbn) {
		return nil, ErrInvalidISBN
	}

	existing, err := s.books.FindByISBN(userID, isbn)
	if err == nil {
		return existing, ErrDuplicateISBN
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	vol, err := s.lookup.FindByISBN(isbn)
	if err != nil {
		return nil, err
	}

	title := vol.Title
	if title == "" {
		title = "Unknown Title"
	}
	author := "Unknown Author"
	if len(vol.Authors) > 0 {
		author = vol.Authors[0]
	}

	book := models.Book{
		UserID:        userID,
		ISBN:          isbn,
		Title:         title,
		Author:        author,
		PublishedDate: vol.PublishedDate,
		Description:   vol.Description,
		Categories:    datatypes.NewJSONSlice(vol.Categories),
		CoverURL:      upgradeToHTTPS(vol.Thumbnail),
	}

	if err := s.books.Create(&book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Update is a field-level replace of the mutable attributes. Existence is
// checked before the write so updating a missing or foreign book fails
// loudly instead of succeeding against nothing.
func (s *BookService) Update(userID uuid.UUID, id uint, req *dto.UpdateBookRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(req.Author) == "" {
		return ErrAuthorRequired
	}
	isbn := NormalizeISBN(req.ISBN)
	if isbn != "" && !isbnPattern.MatchString(isbn) {
		return ErrInvalidISBN
	}

	if _, err := s.books.FindByID(userID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	book := models.Book{
		ID:            id,
		UserID:        userID,
		Title:         strings.TrimSpace(req.Title),
		Author:        strings.TrimSpace(req.Author),
		PublishedDate: req.PublishedDate,
		Description:   req.Description,
		Categories:    datatypes.NewJSONSlice(req.Categories),
		CoverURL:      req.CoverURL,
		ISBN:          isbn,
	}

	if err := s.books.Update(&book); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

// Delete removes by id+owner in one store operation; zero rows affected
// means the caller never owned it.
func (s *BookService) Delete(userID uuid.UUID, id uint) error {
	rows, err := s.books.Delete(userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookNotFound
	}
	return nil
}

// NormalizeISBN strips hyphens and spaces, e.g. "978-0-544-00341-5" →
// "9780544003415".
func NormalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(isbn, " ", "")
}

func upgradeToHTTPS(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}
