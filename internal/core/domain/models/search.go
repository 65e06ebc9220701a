package models

import "strconv"

// SearchResults is the container returned by the full-text search endpoint.
type SearchResults struct {
	Start    int              `json:"start"`
	NumFound int              `json:"num_found"`
	Docs     []SearchDocument `json:"docs"`
}

// First returns the top-ranked document, or nil when the search matched
// nothing.
func (r *SearchResults) First() *SearchDocument {
	if len(r.Docs) == 0 {
		return nil
	}
	return &r.Docs[0]
}

// SearchDocument is the work-level aggregate the search API returns: one
// entry summarizing all editions of a book.
type SearchDocument struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle,omitempty"`
	Subjects         []string `json:"subject,omitempty"`
	AuthorNames      []string `json:"author_name,omitempty"`
	AuthorKeys       []string `json:"author_key,omitempty"`
	EditionKeys      []string `json:"edition_key,omitempty"`
	Languages        []string `json:"language,omitempty"`
	Publishers       []string `json:"publisher,omitempty"`
	PublishDates     []string `json:"publish_date,omitempty"`
	PublishPlaces    []string `json:"publish_place,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	ISBNs            []string `json:"isbn,omitempty"`
	LCCNs            []string `json:"lccn,omitempty"`
	OCLCs            []string `json:"oclc,omitempty"`
	GoodreadsIDs     []string `json:"id_goodreads,omitempty"`
	LibraryThingIDs  []string `json:"id_librarything,omitempty"`
}

// Authors pairs the parallel author_name/author_key lists. Pairing stops at
// the shorter list: entries past its end are dropped. The two lists are
// expected to correspond one-to-one in order, but the API does not
// guarantee it.
func (d *SearchDocument) Authors() []Author {
	n := len(d.AuthorNames)
	if len(d.AuthorKeys) < n {
		n = len(d.AuthorKeys)
	}
	authors := make([]Author, 0, n)
	for i := 0; i < n; i++ {
		authors = append(authors, Author{Name: d.AuthorNames[i], OLID: d.AuthorKeys[i]})
	}
	return authors
}

// Identifiers builds the standard list-valued identifier map for the work.
// Every kind is present even when empty. The olid entry is the work OLID
// extracted from the document key, when one can be found.
func (d *SearchDocument) Identifiers() map[IdentifierKind][]string {
	olids := []string{}
	if olid, ok := ExtractOLID(d.Key, "works"); ok {
		olids = append(olids, olid)
	}
	ids := map[IdentifierKind][]string{
		IDOLID:         olids,
		IDISBNs:        {},
		IDOCLC:         {},
		IDLCCN:         {},
		IDGoodreads:    {},
		IDLibraryThing: {},
	}
	ids[IDISBNs] = append(ids[IDISBNs], d.ISBNs...)
	ids[IDOCLC] = append(ids[IDOCLC], d.OCLCs...)
	ids[IDLCCN] = append(ids[IDLCCN], d.LCCNs...)
	ids[IDGoodreads] = append(ids[IDGoodreads], d.GoodreadsIDs...)
	ids[IDLibraryThing] = append(ids[IDLibraryThing], d.LibraryThingIDs...)
	return ids
}

// ToBook collapses the work aggregate into a single Book, taking the first
// publisher and the first publish year.
func (d *SearchDocument) ToBook() *Book {
	publishDate := ""
	if d.FirstPublishYear > 0 {
		publishDate = strconv.Itoa(d.FirstPublishYear)
	}
	publishers := []string{}
	if len(d.Publishers) > 0 {
		publishers = []string{d.Publishers[0]}
	}
	return &Book{
		Title:       d.Title,
		Subtitle:    d.Subtitle,
		Publishers:  publishers,
		PublishDate: publishDate,
		Authors:     d.Authors(),
		Identifiers: d.Identifiers(),
	}
}
