package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.Len(t, strings.Split(encoded, "."), 2)

	assert.NoError(t, VerifyPassword("correct horse battery staple", encoded))
	assert.Error(t, VerifyPassword("wrong password", encoded))
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("samepassword")
	require.NoError(t, err)
	b, err := HashPassword("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_MalformedEncoding(t *testing.T) {
	assert.Error(t, VerifyPassword("pw", "not-an-encoded-hash"))
	assert.Error(t, VerifyPassword("pw", "too.many.parts"))
	assert.Error(t, VerifyPassword("pw", "!!!.!!!"))
}
