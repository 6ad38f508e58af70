package routers

import (
	"famigift/internal/api/handlers/contributions"
	"net/http"
)

func contributionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /contributions/cadeaux/{giftId}", contributions.ContributeHandler)
	mux.HandleFunc("GET /contributions/cadeaux/{giftId}", contributions.ListGiftContributionsHandler)

	mux.HandleFunc("GET /contributions/mes-contributions", contributions.MyContributionsHandler)
	mux.HandleFunc("GET /contributions/statistics", contributions.StatisticsHandler)

	mux.HandleFunc("PATCH /contributions/{id}", contributions.UpdateContributionHandler)
	mux.HandleFunc("DELETE /contributions/{id}", contributions.DeleteContributionHandler)

	return mux
}
