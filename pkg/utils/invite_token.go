package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func GenerateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rndfallback"
	}

	s := hex.EncodeToString(bytes)
	s = strings.ToLower(s)
	if len(s) > n {
		s = s[:n]
	}
	return s
}

// GenerateInviteToken mints a single-use invitation token. The raw hex token
// goes into the email link; only its sha256 digest is persisted, so a leaked
// invitations table cannot be replayed.
func GenerateInviteToken() (raw string, hashed string, err error) {
	tokenBytes := make([]byte, 32)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", ErrorHandler(err, "failed to generate token")
	}

	raw = hex.EncodeToString(tokenBytes)
	digest := sha256.Sum256(tokenBytes)
	hashed = hex.EncodeToString(digest[:])
	return raw, hashed, nil
}

// HashInviteToken maps a raw token from an accept link back to its stored digest.
func HashInviteToken(raw string) (string, error) {
	bytes, err := hex.DecodeString(raw)
	if err != nil {
		return "", ErrorHandler(err, "malformed invite token")
	}

	digest := sha256.Sum256(bytes)
	return hex.EncodeToString(digest[:]), nil
}
