package ports

import (
	"context"
	"net/url"

	"openshelf/internal/core/domain/models"
)

// Catalog is the client-facing surface of one bibliographic catalog
// service. Absence ("not found", "no match") is a nil book or empty string
// with a nil error; errors are reserved for authentication failures,
// invalid input and exhausted retries.
type Catalog interface {
	Login(ctx context.Context, creds models.Credentials) error
	FindMatchingAuthors(ctx context.Context, name string, limit int) ([]models.AuthorMatch, error)
	ResolveAuthorOLID(ctx context.Context, name string) (string, error)
	CreateBook(ctx context.Context, book models.Book) (string, error)
	PreviewCreateBook(ctx context.Context, book models.Book) (url.Values, error)
	GetBookByOLID(ctx context.Context, olid string) (*models.Book, error)
	GetBookByMetadata(ctx context.Context, title, author string) (*models.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error)
	ResolveOLIDByISBN(ctx context.Context, isbn string) (string, error)
}

// StateStore tracks which ISBNs an import run has already handled.
type StateStore interface {
	IsProcessed(isbn string) bool
	MarkProcessed(isbn string) error
	Save() error
}

// Diagnostics receives failure events from the client and the retry
// policy. Injected rather than global so callers control where give-up
// reports and decode failures end up.
type Diagnostics interface {
	Record(event string, err error)
}
