package routers

import (
	"famigift/internal/api/handlers/gifts"
	"net/http"
)

func giftsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /cadeaux", gifts.CreateGiftHandler)
	mux.HandleFunc("GET /cadeaux", gifts.GetAllGiftsHandler)
	mux.HandleFunc("GET /cadeaux/me", gifts.GetMyGiftsHandler)
	mux.HandleFunc("GET /cadeaux/famille/{id}", gifts.GetGiftsByFamilyHandler)

	mux.HandleFunc("GET /cadeaux/{id}", gifts.GetGiftByIDHandler)
	mux.HandleFunc("PATCH /cadeaux/{id}", gifts.UpdateGiftHandler)
	mux.HandleFunc("DELETE /cadeaux/{id}", gifts.DeleteGiftHandler)

	mux.HandleFunc("POST /cadeaux/{id}/mark-purchased", gifts.MarkPurchasedHandler)
	mux.HandleFunc("POST /cadeaux/{id}/unmark-purchased", gifts.UnmarkPurchasedHandler)

	return mux
}
