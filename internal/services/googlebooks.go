package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aaposadas/book-inventory-api/internal/config"
)

var (
	ErrLookupNotConfigured = errors.New("book lookup service is not configured")
	ErrLookupNotFound      = errors.New("no volume found for this ISBN")
	ErrLookupUnavailable   = errors.New("book lookup service unavailable")
)

// Volume is the metadata extracted from a catalog lookup.
type Volume struct {
	Title         string
	Authors       []string
	PublishedDate string
	Description   string
	Categories    []string
	Thumbnail     string
}

// MetadataLookup resolves an ISBN to volume metadata via an external
// catalog service.
type MetadataLookup interface {
	FindByISBN(isbn string) (*Volume, error)
}

// --- Google Books wire types (internal) ---

type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo *volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	ImageLinks    *struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

type GoogleBooksClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGoogleBooksClient(cfg *config.Config) *GoogleBooksClient {
	return &GoogleBooksClient{
		apiKey:     cfg.BooksAPIKey,
		baseURL:    cfg.BooksAPIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FindByISBN queries the volumes endpoint. A transport failure is
// "service degraded", distinct from "no such volume".
func (c *GoogleBooksClient) FindByISBN(isbn string) (*Volume, error) {
	if c.apiKey == "" {
		return nil, ErrLookupNotConfigured
	}

	query := url.Values{}
	query.Set("q", "isbn:"+isbn)
	query.Set("key", c.apiKey)

	resp, err := c.httpClient.Get(c.baseURL + "?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLookupUnavailable, resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}

	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return nil, ErrLookupNotFound
	}

	info := payload.Items[0].VolumeInfo
	if info == nil {
		return nil, ErrLookupNotFound
	}

	vol := &Volume{
		Title:         info.Title,
		Authors:       info.Authors,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		Categories:    info.Categories,
	}
	if info.ImageLinks != nil {
		vol.Thumbnail = info.ImageLinks.Thumbnail
	}
	return vol, nil
}
