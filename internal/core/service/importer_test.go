package service_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openshelf/internal/config"
	"openshelf/internal/core/domain/models"
	"openshelf/internal/core/service"
)

// mockCatalog implements ports.Catalog
type mockCatalog struct {
	books    map[string]*models.Book // source side: isbn -> book
	existing map[string]string       // dest side: isbn -> olid
	created  []string
	failISBN string
}

func (m *mockCatalog) Login(ctx context.Context, creds models.Credentials) error { return nil }

func (m *mockCatalog) FindMatchingAuthors(ctx context.Context, name string, limit int) ([]models.AuthorMatch, error) {
	return nil, nil
}

func (m *mockCatalog) ResolveAuthorOLID(ctx context.Context, name string) (string, error) {
	return "", nil
}

func (m *mockCatalog) CreateBook(ctx context.Context, book models.Book) (string, error) {
	if ids := book.Identifiers[models.IDISBN10]; len(ids) > 0 && ids[0] == m.failISBN {
		return "", errors.New("creation rejected")
	}
	m.created = append(m.created, book.Title)
	return "OL1M", nil
}

func (m *mockCatalog) PreviewCreateBook(ctx context.Context, book models.Book) (url.Values, error) {
	return nil, nil
}

func (m *mockCatalog) GetBookByOLID(ctx context.Context, olid string) (*models.Book, error) {
	return nil, nil
}

func (m *mockCatalog) GetBookByMetadata(ctx context.Context, title, author string) (*models.Book, error) {
	return nil, nil
}

func (m *mockCatalog) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	return m.books[isbn], nil
}

func (m *mockCatalog) ResolveOLIDByISBN(ctx context.Context, isbn string) (string, error) {
	return m.existing[isbn], nil
}

// mockState implements ports.StateStore in memory.
type mockState struct {
	processed map[string]bool
	saved     bool
}

func newMockState() *mockState { return &mockState{processed: map[string]bool{}} }

func (m *mockState) IsProcessed(isbn string) bool { return m.processed[isbn] }

func (m *mockState) MarkProcessed(isbn string) error {
	m.processed[isbn] = true
	return nil
}

func (m *mockState) Save() error {
	m.saved = true
	return nil
}

func bookWithISBN(title, isbn string) *models.Book {
	book := models.NewBook(title)
	book.AddIdentifier(models.IDISBN10, isbn)
	return book
}

func TestImportService_Run(t *testing.T) {
	source := &mockCatalog{books: map[string]*models.Book{
		"1111111111": bookWithISBN("Book One", "1111111111"),
		"2222222222": bookWithISBN("Book Two", "2222222222"),
	}}
	dest := &mockCatalog{existing: map[string]string{"2222222222": "OL2M"}}
	state := newMockState()
	state.processed["3333333333"] = true

	svc := service.NewImportService(&config.Config{}, source, dest, state)
	report, err := svc.Run(context.Background(), []string{
		"1111111111", // new: fetched and created
		"2222222222", // already at destination
		"3333333333", // already processed by a previous run
		"4444444444", // unknown to the source
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, []string{"Book One"}, dest.created)

	assert.True(t, state.processed["1111111111"])
	assert.True(t, state.processed["2222222222"])
	assert.False(t, state.processed["4444444444"], "missing books stay eligible for later runs")
	assert.True(t, state.saved)
}

func TestImportService_CountsFailures(t *testing.T) {
	source := &mockCatalog{books: map[string]*models.Book{
		"1111111111": bookWithISBN("Book One", "1111111111"),
		"2222222222": bookWithISBN("Book Two", "2222222222"),
	}}
	dest := &mockCatalog{failISBN: "1111111111"}
	state := newMockState()

	svc := service.NewImportService(&config.Config{}, source, dest, state)
	report, err := svc.Run(context.Background(), []string{"1111111111", "2222222222"})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Created)
	assert.False(t, state.processed["1111111111"], "failed imports stay eligible for retry")
}

func TestImportService_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := service.NewImportService(&config.Config{}, &mockCatalog{}, &mockCatalog{}, newMockState())
	_, err := svc.Run(ctx, []string{"1111111111"})
	assert.ErrorIs(t, err, context.Canceled)
}
