package catalog

import (
	"net/url"

	"openshelf/internal/core/domain/models"
)

// primaryIDOrder is the fixed preference order for choosing the single
// identifier submitted to the creation endpoint.
var primaryIDOrder = []models.IdentifierKind{
	models.IDISBN10,
	models.IDISBN13,
	models.IDLCCN,
}

// primaryIdentifier scans the book's identifiers in preference order and
// returns the first kind present along with its first value.
func primaryIdentifier(b models.Book) (models.IdentifierKind, string, error) {
	for _, kind := range primaryIDOrder {
		if values := b.Identifiers[kind]; len(values) > 0 {
			return kind, values[0], nil
		}
	}
	return "", "", models.ErrNoPrimaryIdentifier
}

// creationForm assembles the field set /books/add expects. The identifier
// kind is revalidated here so internal misuse surfaces as InvalidInput
// rather than a rejected request.
func creationForm(b models.Book, authorName string, authorKey models.AuthorKey,
	idName models.IdentifierKind, idValue string) (url.Values, error) {

	valid := false
	for _, kind := range primaryIDOrder {
		if idName == kind {
			valid = true
			break
		}
	}
	if !valid {
		return nil, models.ErrInvalidIdentifierKind
	}

	form := url.Values{}
	form.Set("title", b.Title)
	form.Set("author_name", authorName)
	form.Set("author_key", authorKey.FormValue())
	form.Set("publish_date", b.PublishDate)
	form.Set("publisher", b.PrimaryPublisher())
	form.Set("id_name", string(idName))
	form.Set("id_value", idValue)
	form.Set("_save", "")
	return form, nil
}

// editionData is one bibkey entry from /api/books?jscmd=data.
type editionData struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	PublishDate string `json:"publish_date"`
	Publishers  []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	Authors []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"authors"`
	Identifiers map[string][]string `json:"identifiers"`
}

// detailToBook converts a jscmd=data entry into a Book: the key field is
// renamed into an olid identifier entry, and each author's olid is
// extracted from its URL. Fields the struct does not name are dropped.
func detailToBook(ed editionData) *models.Book {
	book := models.NewBook(ed.Title)
	book.Subtitle = ed.Subtitle
	book.PublishDate = ed.PublishDate

	for _, p := range ed.Publishers {
		book.Publishers = append(book.Publishers, p.Name)
	}

	for kind, values := range ed.Identifiers {
		ids := []string{}
		book.Identifiers[models.IdentifierKind(kind)] = append(ids, values...)
	}
	olids := []string{}
	if olid, ok := models.ExtractOLID(ed.Key, "books"); ok {
		olids = append(olids, olid)
	}
	book.Identifiers[models.IDOLID] = olids

	for _, a := range ed.Authors {
		author := models.Author{Name: a.Name}
		if olid, ok := models.ExtractOLID(a.URL, "authors"); ok {
			author.OLID = olid
		}
		book.Authors = append(book.Authors, author)
	}
	return book
}

// nativeEdition is the /books/<olid>.json detail payload in the service's
// native field names.
type nativeEdition struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Publishers  []string `json:"publishers"`
	PublishDate string   `json:"publish_date"`
	ISBN10      []string `json:"isbn_10"`
	ISBN13      []string `json:"isbn_13"`
	LCCN        []string `json:"lccn"`
	OCLCNumbers []string `json:"oclc_numbers"`
	Authors     []struct {
		Key string `json:"key"`
	} `json:"authors"`
}

// nativeToBook maps the native detail payload directly: identifier lists
// carry over under their own kinds with no key renaming, and author
// references yield olid-only authors (the payload has no names).
func nativeToBook(ne nativeEdition) *models.Book {
	book := models.NewBook(ne.Title)
	book.Subtitle = ne.Subtitle
	book.Publishers = append(book.Publishers, ne.Publishers...)
	book.PublishDate = ne.PublishDate

	book.Identifiers[models.IDISBN10] = append([]string{}, ne.ISBN10...)
	book.Identifiers[models.IDISBN13] = append([]string{}, ne.ISBN13...)
	book.Identifiers[models.IDLCCN] = append([]string{}, ne.LCCN...)
	book.Identifiers[models.IDOCLC] = append([]string{}, ne.OCLCNumbers...)

	for _, ref := range ne.Authors {
		if olid, ok := models.ExtractOLID(ref.Key, "authors"); ok {
			book.Authors = append(book.Authors, models.Author{OLID: olid})
		}
	}
	return book
}
