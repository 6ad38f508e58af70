package middlewares

import (
	"famigift/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authProbe(t *testing.T) (http.Handler, *int) {
	t.Helper()
	var seenUserID int
	h := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.UserIDFromRequest(r)
		require.NoError(t, err)
		seenUserID = id
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seenUserID
}

func TestJWTMiddleware_CookieToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	token, err := utils.SignToken(7, "paul", "user")
	require.NoError(t, err)

	handler, seenUserID := authProbe(t)

	r := httptest.NewRequest("GET", "/families", nil)
	r.AddCookie(&http.Cookie{Name: "Bearer", Value: token})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, *seenUserID)
}

func TestJWTMiddleware_AuthorizationHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	token, err := utils.SignToken(9, "lucie", "user")
	require.NoError(t, err)

	handler, seenUserID := authProbe(t)

	r := httptest.NewRequest("GET", "/families", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, *seenUserID)
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	handler, _ := authProbe(t)

	r := httptest.NewRequest("GET", "/families", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing Bearer token")
}

func TestJWTMiddleware_TamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	token, err := utils.SignToken(7, "paul", "user")
	require.NoError(t, err)

	handler, _ := authProbe(t)

	r := httptest.NewRequest("GET", "/families", nil)
	r.Header.Set("Authorization", "Bearer "+token+"x")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewaresExcludePaths(t *testing.T) {
	handler := MiddlewaresExcludePaths(JWTMiddleware, "/users/signup", "/users/login")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	// Excluded path passes through without a token.
	r := httptest.NewRequest("POST", "/users/signup", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	// Everything else still requires one.
	r = httptest.NewRequest("GET", "/families", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
