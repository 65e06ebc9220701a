package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOLID(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		resourceType string
		want         string
		found        bool
	}{
		{"full url", "https://openlibrary.org/books/OL25943366M", "books", "OL25943366M", true},
		{"path only", "/books/OL1M", "books", "OL1M", true},
		{"author url", "/authors/OL2A", "authors", "OL2A", true},
		{"work key", "/works/OL17365510W", "works", "OL17365510W", true},
		{"trailing segment", "/books/OL1M/some-title", "books", "OL1M", true},
		{"wrong type", "/authors/OL2A", "books", "", false},
		{"no identifier", "/books/", "books", "", false},
		{"empty", "", "books", "", false},
		{"identifier stops at non-alnum", "/books/OL1M.json", "books", "OL1M", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractOLID(tt.url, tt.resourceType)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}
