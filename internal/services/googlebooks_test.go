package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaposadas/book-inventory-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLookupClient(baseURL string) *GoogleBooksClient {
	return NewGoogleBooksClient(&config.Config{
		BooksAPIKey: "test-key",
		BooksAPIURL: baseURL,
	})
}

func TestFindByISBN_Success(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"volumeInfo": {
					"title": "The Hobbit",
					"authors": ["J.R.R. Tolkien"],
					"publishedDate": "2012-09-18",
					"description": "There and back again.",
					"categories": ["Fiction"],
					"imageLinks": {"thumbnail": "http://books.google.com/thumb"}
				}
			}]
		}`))
	}))
	defer server.Close()

	vol, err := newLookupClient(server.URL).FindByISBN("9780544003415")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "q=isbn%3A9780544003415")
	assert.Contains(t, gotQuery, "key=test-key")
	assert.Equal(t, "The Hobbit", vol.Title)
	assert.Equal(t, []string{"J.R.R. Tolkien"}, vol.Authors)
	assert.Equal(t, "2012-09-18", vol.PublishedDate)
	assert.Equal(t, "http://books.google.com/thumb", vol.Thumbnail)
}

func TestFindByISBN_MissingKey(t *testing.T) {
	t.Parallel()

	client := NewGoogleBooksClient(&config.Config{BooksAPIURL: "http://unused"})
	_, err := client.FindByISBN("9780544003415")
	assert.ErrorIs(t, err, ErrLookupNotConfigured)
}

func TestFindByISBN_EmptyResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	_, err := newLookupClient(server.URL).FindByISBN("9780544003415")
	assert.ErrorIs(t, err, ErrLookupNotFound)
}

func TestFindByISBN_MissingVolumeInfo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 1, "items": [{}]}`))
	}))
	defer server.Close()

	_, err := newLookupClient(server.URL).FindByISBN("9780544003415")
	assert.ErrorIs(t, err, ErrLookupNotFound)
}

func TestFindByISBN_UpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newLookupClient(server.URL).FindByISBN("9780544003415")
	assert.ErrorIs(t, err, ErrLookupUnavailable)
}

func TestFindByISBN_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newLookupClient(server.URL).FindByISBN("9780544003415")
	assert.ErrorIs(t, err, ErrLookupUnavailable)
}

func TestFindByISBN_MalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := newLookupClient(server.URL).FindByISBN("9780544003415")
	assert.ErrorIs(t, err, ErrLookupUnavailable)
}
