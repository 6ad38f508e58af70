package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSkipLimitParams_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/cadeaux", nil)

	skip, limit := GetSkipLimitParams(r)
	assert.Equal(t, 0, skip)
	assert.Equal(t, defaultPageLimit, limit)
}

func TestGetSkipLimitParams_Explicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/cadeaux?skip=20&limit=10", nil)

	skip, limit := GetSkipLimitParams(r)
	assert.Equal(t, 20, skip)
	assert.Equal(t, 10, limit)
}

func TestGetSkipLimitParams_ClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/cadeaux?limit=9999", nil)

	_, limit := GetSkipLimitParams(r)
	assert.Equal(t, maxPageLimit, limit)
}

func TestGetSkipLimitParams_IgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/cadeaux?skip=abc&limit=-5", nil)

	skip, limit := GetSkipLimitParams(r)
	assert.Equal(t, 0, skip)
	assert.Equal(t, defaultPageLimit, limit)
}
