package dto

import "github.com/aaposadas/book-inventory-api/internal/models"

// UpdateBookRequest is a full replace of the mutable fields. ID, owner and
// creation timestamp are immutable and deliberately absent.
type UpdateBookRequest struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	CoverURL      string   `json:"coverUrl"`
	ISBN          string   `json:"isbn"`
}

// IsbnConflictResponse is returned when the caller already owns a book with
// the requested ISBN.
type IsbnConflictResponse struct {
	Error    bool         `json:"error"`
	Message  string       `json:"message"`
	Existing *models.Book `json:"existing"`
}
