package utils

import (
	"context"
	"errors"
	"net/http"
)

type ContextKey string

// UserIDFromRequest pulls the authenticated user id set by the JWT middleware.
func UserIDFromRequest(r *http.Request) (int, error) {
	idFloat, ok := r.Context().Value(ContextKey("userId")).(float64)
	if !ok {
		return 0, errors.New("no user id in request context")
	}
	return int(idFloat), nil
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(ContextKey("role")).(string)
	return role
}
