package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributionView_Named(t *testing.T) {
	c := Contribution{ID: 1, Amount: decimal.NewFromInt(25), Message: "bon anniversaire"}

	view := c.View("mamie")

	require.NotNil(t, view.Contributor)
	assert.Equal(t, "mamie", *view.Contributor)
	assert.Equal(t, "bon anniversaire", view.Message)
}

func TestContributionView_Anonymous(t *testing.T) {
	c := Contribution{ID: 2, Amount: decimal.NewFromInt(10), IsAnonymous: true}

	view := c.View("mamie")

	assert.Nil(t, view.Contributor)
	assert.True(t, view.IsAnonymous)

	// The name must not leak through serialization either.
	payload, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "mamie")
	assert.Contains(t, string(payload), `"contributor":null`)
}
