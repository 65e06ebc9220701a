package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openshelf/internal/core/domain/models"
)

func TestPrimaryIdentifier_PreferenceOrder(t *testing.T) {
	book := models.NewBook("T")
	book.AddIdentifier(models.IDLCCN, "62019420")
	book.AddIdentifier(models.IDISBN13, "9780747550303")
	book.AddIdentifier(models.IDISBN10, "0747550301")

	kind, value, err := primaryIdentifier(*book)
	require.NoError(t, err)
	assert.Equal(t, models.IDISBN10, kind)
	assert.Equal(t, "0747550301", value)
}

func TestPrimaryIdentifier_LCCNOnly(t *testing.T) {
	book := models.NewBook("T")
	book.AddIdentifier(models.IDLCCN, "62019420")
	book.AddIdentifier(models.IDOCLC, "1234")

	kind, value, err := primaryIdentifier(*book)
	require.NoError(t, err)
	assert.Equal(t, models.IDLCCN, kind)
	assert.Equal(t, "62019420", value)
}

func TestPrimaryIdentifier_NoneQualifies(t *testing.T) {
	book := models.NewBook("T")
	book.AddIdentifier(models.IDOCLC, "1234")
	book.AddIdentifier(models.IDGoodreads, "5678")

	_, _, err := primaryIdentifier(*book)
	assert.ErrorIs(t, err, models.ErrNoPrimaryIdentifier)
}

func TestCreationForm_RejectsInvalidKind(t *testing.T) {
	book := models.NewBook("T")
	_, err := creationForm(*book, "", models.NewAuthorKey(), models.IDOCLC, "1234")
	assert.ErrorIs(t, err, models.ErrInvalidIdentifierKind)
}

func TestCreationForm_Fields(t *testing.T) {
	book := models.NewBook("Wie die Weißen Engel die Blauen Tiger zur Schnecke machten")
	book.Publishers = []string{"Bertelsmann"}
	book.PublishDate = "1982"

	form, err := creationForm(*book, "Walter Kort", models.ExistingAuthorKey("OL1A"), models.IDISBN10, "3570028364")
	require.NoError(t, err)

	assert.Equal(t, "Walter Kort", form.Get("author_name"))
	assert.Equal(t, "/authors/OL1A", form.Get("author_key"))
	assert.Equal(t, "Bertelsmann", form.Get("publisher"))
	assert.Equal(t, "1982", form.Get("publish_date"))
	assert.Equal(t, "isbn_10", form.Get("id_name"))
	assert.Equal(t, "3570028364", form.Get("id_value"))
	_, hasSave := form["_save"]
	assert.True(t, hasSave)
}

func TestDetailToBook(t *testing.T) {
	payload := `{
		"key": "/books/OL1M",
		"title": "X",
		"subtitle": "a subtitle",
		"publish_date": "1982",
		"publishers": [{"name": "Bertelsmann"}],
		"authors": [{"name": "A", "url": "https://openlibrary.org/authors/OL2A/a"}],
		"identifiers": {"goodreads": ["42"], "isbn_10": ["3570028364"]},
		"number_of_pages": 200
	}`
	var ed editionData
	require.NoError(t, json.Unmarshal([]byte(payload), &ed))

	book := detailToBook(ed)
	assert.Equal(t, "X", book.Title)
	assert.Equal(t, "a subtitle", book.Subtitle)
	assert.Equal(t, []string{"Bertelsmann"}, book.Publishers)
	assert.Equal(t, []string{"OL1M"}, book.Identifiers[models.IDOLID])
	assert.Equal(t, []string{"42"}, book.Identifiers[models.IDGoodreads])
	assert.Equal(t, []string{"3570028364"}, book.Identifiers[models.IDISBN10])
	require.Len(t, book.Authors, 1)
	assert.Equal(t, models.Author{Name: "A", OLID: "OL2A"}, book.Authors[0])
}

func TestNativeToBook(t *testing.T) {
	payload := `{
		"title": "Analogschaltungen",
		"publishers": ["Vogel-Verl."],
		"publish_date": "1982",
		"isbn_10": ["3802306813"],
		"authors": [{"key": "/authors/OL3A"}],
		"works": [{"key": "/works/OL17365510W"}],
		"latest_revision": 1
	}`
	var ne nativeEdition
	require.NoError(t, json.Unmarshal([]byte(payload), &ne))

	book := nativeToBook(ne)
	assert.Equal(t, "Analogschaltungen", book.Title)
	assert.Equal(t, []string{"Vogel-Verl."}, book.Publishers)
	assert.Equal(t, []string{"3802306813"}, book.Identifiers[models.IDISBN10])
	assert.Empty(t, book.Identifiers[models.IDISBN13])
	assert.NotNil(t, book.Identifiers[models.IDISBN13], "identifier entries stay list-valued when empty")
	require.Len(t, book.Authors, 1)
	assert.Equal(t, "OL3A", book.Authors[0].OLID)
}
