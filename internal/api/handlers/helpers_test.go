package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("mamie@example.com"))
	assert.True(t, ValidateEmail("prenom.nom@sous.domaine.fr"))

	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("a b@example.com"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestCheckBlankFields(t *testing.T) {
	type form struct {
		Name  string
		Email string
	}

	assert.NoError(t, CheckBlankFields(form{Name: "a", Email: "b"}))
	assert.Error(t, CheckBlankFields(form{Name: "a"}))
}

func TestCheckFieldNames(t *testing.T) {
	type payload struct {
		Name  string `json:"name,omitempty"`
		Email string `json:"email"`
	}

	assert.Equal(t, []string{"name", "email"}, CheckFieldNames(payload{}))
}
