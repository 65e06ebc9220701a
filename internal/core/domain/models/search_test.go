package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDocumentAuthors_TruncatingZip(t *testing.T) {
	// Mismatched parallel lists: pairing stops at the shorter list.
	doc := SearchDocument{
		AuthorNames: []string{"A", "B"},
		AuthorKeys:  []string{"K1"},
	}

	authors := doc.Authors()
	require.Len(t, authors, 1)
	assert.Equal(t, Author{Name: "A", OLID: "K1"}, authors[0])
}

func TestSearchDocumentAuthors_Balanced(t *testing.T) {
	doc := SearchDocument{
		AuthorNames: []string{"A", "B"},
		AuthorKeys:  []string{"K1", "K2"},
	}

	authors := doc.Authors()
	require.Len(t, authors, 2)
	assert.Equal(t, "B", authors[1].Name)
	assert.Equal(t, "K2", authors[1].OLID)
}

func TestSearchDocumentIdentifiers_AlwaysListValued(t *testing.T) {
	doc := SearchDocument{Key: "/works/OL1W"}

	ids := doc.Identifiers()
	for _, kind := range []IdentifierKind{IDOLID, IDISBNs, IDOCLC, IDLCCN, IDGoodreads, IDLibraryThing} {
		values, ok := ids[kind]
		assert.True(t, ok, "kind %s missing", kind)
		assert.NotNil(t, values, "kind %s is nil", kind)
	}
	assert.Equal(t, []string{"OL1W"}, ids[IDOLID])
}

func TestSearchDocumentToBook(t *testing.T) {
	doc := SearchDocument{
		Key:              "/works/OL1W",
		Title:            "The Autobiography of Benjamin Franklin",
		Subtitle:         "with notes",
		Publishers:       []string{"First House", "Second House"},
		PublishDates:     []string{"1901", "1990"},
		FirstPublishYear: 1791,
		AuthorNames:      []string{"Benjamin Franklin"},
		AuthorKeys:       []string{"OL26170A"},
		ISBNs:            []string{"9780140390520"},
	}

	book := doc.ToBook()
	assert.Equal(t, "The Autobiography of Benjamin Franklin", book.Title)
	assert.Equal(t, []string{"First House"}, book.Publishers)
	assert.Equal(t, "1791", book.PublishDate)
	require.Len(t, book.Authors, 1)
	assert.Equal(t, "Benjamin Franklin", book.Authors[0].Name)
	assert.Equal(t, []string{"9780140390520"}, book.Identifiers[IDISBNs])
	assert.Equal(t, []string{"OL1W"}, book.Identifiers[IDOLID])
}

func TestSearchResultsFirst(t *testing.T) {
	empty := SearchResults{NumFound: 0}
	assert.Nil(t, empty.First())

	results := SearchResults{
		NumFound: 2,
		Docs:     []SearchDocument{{Title: "first"}, {Title: "second"}},
	}
	require.NotNil(t, results.First())
	assert.Equal(t, "first", results.First().Title)
}
