package routers

import (
	"net/http"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	uRouter := usersRouter()
	mux.Handle("/users/", uRouter)

	fRouter := familiesRouter()
	mux.Handle("/families", fRouter)
	mux.Handle("/families/", fRouter)

	gRouter := giftsRouter()
	mux.Handle("/cadeaux", gRouter)
	mux.Handle("/cadeaux/", gRouter)

	cRouter := contributionsRouter()
	mux.Handle("/contributions/", cRouter)

	return mux
}
