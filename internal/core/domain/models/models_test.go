package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorKeyFormValue(t *testing.T) {
	assert.Equal(t, "__new__", NewAuthorKey().FormValue())
	assert.True(t, NewAuthorKey().IsNew())

	existing := ExistingAuthorKey("OL2A")
	assert.Equal(t, "/authors/OL2A", existing.FormValue())
	assert.False(t, existing.IsNew())
}

func TestBookAddIdentifier(t *testing.T) {
	var book Book // zero value, nil map
	book.AddIdentifier(IDISBN10, "1234567890")
	book.AddIdentifier(IDISBN10, "0987654321")

	assert.Equal(t, []string{"1234567890", "0987654321"}, book.Identifiers[IDISBN10])
}

func TestBookPrimaryAccessors(t *testing.T) {
	book := NewBook("T")
	_, ok := book.PrimaryAuthor()
	assert.False(t, ok)
	assert.Equal(t, "", book.PrimaryPublisher())

	book.Authors = []Author{{Name: "A"}, {Name: "B"}}
	book.Publishers = []string{"P1", "P2"}

	author, ok := book.PrimaryAuthor()
	assert.True(t, ok)
	assert.Equal(t, "A", author.Name)
	assert.Equal(t, "P1", book.PrimaryPublisher())
}
