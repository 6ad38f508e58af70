package utils

import (
	"net/http"
	"strconv"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// GetSkipLimitParams parses ?skip= and ?limit= query params, clamping both
// to sane bounds. Missing or malformed values fall back to the defaults.
func GetSkipLimitParams(r *http.Request) (int, int) {
	skip := 0
	limit := defaultPageLimit

	if s := r.URL.Query().Get("skip"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			skip = parsed
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return skip, limit
}
