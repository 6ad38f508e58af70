package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteToken(t *testing.T) {
	raw, hashed, err := GenerateInviteToken()
	require.NoError(t, err)

	// 32 random bytes hex encoded, sha256 digest hex encoded.
	assert.Len(t, raw, 64)
	assert.Len(t, hashed, 64)
	assert.NotEqual(t, raw, hashed)

	recomputed, err := HashInviteToken(raw)
	require.NoError(t, err)
	assert.Equal(t, hashed, recomputed)
}

func TestGenerateInviteToken_Unique(t *testing.T) {
	rawA, _, err := GenerateInviteToken()
	require.NoError(t, err)
	rawB, _, err := GenerateInviteToken()
	require.NoError(t, err)

	assert.NotEqual(t, rawA, rawB)
}

func TestHashInviteToken_RejectsNonHex(t *testing.T) {
	_, err := HashInviteToken("not hex at all")
	assert.Error(t, err)
}

func TestHashInviteToken_Deterministic(t *testing.T) {
	a, err := HashInviteToken("deadbeef")
	require.NoError(t, err)
	b, err := HashInviteToken("deadbeef")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
