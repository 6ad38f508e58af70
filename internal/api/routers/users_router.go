package routers

import (
	"famigift/internal/api/handlers/auth"
	"net/http"
)

func usersRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/signup", auth.RegisterUsersHandler)
	mux.HandleFunc("POST /users/login", auth.LoginHandler)
	mux.HandleFunc("POST /users/logout", auth.LogoutHandler)

	mux.HandleFunc("GET /users/me", auth.MeHandler)
	mux.HandleFunc("PATCH /users/updatepassword", auth.UpdatePasswordHandler)

	return mux
}
