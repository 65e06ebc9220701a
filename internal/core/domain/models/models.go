package models

import "errors"

// IdentifierKind names one family of edition identifiers. Identifier maps
// are always list-valued, even when a kind has no values, so downstream
// code can iterate without nil checks.
type IdentifierKind string

const (
	IDISBN10       IdentifierKind = "isbn_10"
	IDISBN13       IdentifierKind = "isbn_13"
	IDLCCN         IdentifierKind = "lccn"
	IDOCLC         IdentifierKind = "oclc"
	IDOLID         IdentifierKind = "olid"
	IDISBNs        IdentifierKind = "isbns"
	IDGoodreads    IdentifierKind = "goodreads"
	IDLibraryThing IdentifierKind = "librarything"
)

var (
	// ErrNoPrimaryIdentifier is returned when a book submitted for creation
	// carries none of isbn_10, isbn_13 or lccn.
	ErrNoPrimaryIdentifier = errors.New("isbn_10, isbn_13 or lccn identifier required")

	// ErrInvalidIdentifierKind is returned when an identifier kind outside
	// the creation endpoint's accepted set reaches form assembly.
	ErrInvalidIdentifierKind = errors.New("identifier kind not accepted by the creation endpoint")
)

// Author is a single catalog author. OLID is empty when the author has no
// known catalog record.
type Author struct {
	Name string `json:"name"`
	OLID string `json:"olid,omitempty"`
}

// AuthorMatch is one raw candidate from the author auto-complete API.
type AuthorMatch struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Credentials is the JSON body posted to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// newAuthorSentinel is the creation endpoint's marker for an author that
// does not yet exist in the catalog.
const newAuthorSentinel = "__new__"

// AuthorKey identifies the author field of a creation request: either an
// existing catalog author or the new-author marker.
type AuthorKey struct {
	olid string
}

func ExistingAuthorKey(olid string) AuthorKey { return AuthorKey{olid: olid} }

func NewAuthorKey() AuthorKey { return AuthorKey{} }

func (k AuthorKey) IsNew() bool { return k.olid == "" }

// FormValue renders the key the way /books/add expects it.
func (k AuthorKey) FormValue() string {
	if k.IsNew() {
		return newAuthorSentinel
	}
	return "/authors/" + k.olid
}

// Book is a normalized edition record. Instances are built fresh from each
// response or creation call and never cached; ownership passes to the caller.
type Book struct {
	Title       string                      `json:"title"`
	Subtitle    string                      `json:"subtitle,omitempty"`
	Publishers  []string                    `json:"publishers,omitempty"`
	PublishDate string                      `json:"publish_date,omitempty"`
	Authors     []Author                    `json:"authors,omitempty"`
	Identifiers map[IdentifierKind][]string `json:"identifiers"`
}

// NewBook returns a Book with an initialized identifier map.
func NewBook(title string) *Book {
	return &Book{
		Title:       title,
		Identifiers: map[IdentifierKind][]string{},
	}
}

// AddIdentifier appends a value under the given kind, initializing the map
// when needed.
func (b *Book) AddIdentifier(kind IdentifierKind, value string) {
	if b.Identifiers == nil {
		b.Identifiers = map[IdentifierKind][]string{}
	}
	b.Identifiers[kind] = append(b.Identifiers[kind], value)
}

// PrimaryAuthor returns the first author, or false when the book has none.
func (b *Book) PrimaryAuthor() (Author, bool) {
	if len(b.Authors) == 0 {
		return Author{}, false
	}
	return b.Authors[0], true
}

// PrimaryPublisher returns the first publisher, or "" when none is known.
func (b *Book) PrimaryPublisher() string {
	if len(b.Publishers) == 0 {
		return ""
	}
	return b.Publishers[0]
}
