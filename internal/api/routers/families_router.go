package routers

import (
	"famigift/internal/api/handlers/families"
	"net/http"
)

func familiesRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /families", families.CreateFamilyHandler)
	mux.HandleFunc("GET /families", families.GetMyFamiliesHandler)
	mux.HandleFunc("GET /families/search", families.SearchPublicFamiliesHandler)

	mux.HandleFunc("GET /families/{id}", families.GetFamilyByIDHandler)
	mux.HandleFunc("PATCH /families/{id}", families.UpdateFamilyHandler)
	mux.HandleFunc("DELETE /families/{id}", families.DeleteFamilyHandler)

	mux.HandleFunc("POST /families/{id}/membres/{userId}", families.AddMemberHandler)
	mux.HandleFunc("DELETE /families/{id}/membres/{userId}", families.RemoveMemberHandler)

	mux.HandleFunc("POST /families/{id}/demander-adhesion", families.RequestToJoinHandler)
	mux.HandleFunc("GET /families/{id}/demandes", families.ListJoinRequestsHandler)
	mux.HandleFunc("POST /families/demandes/{id}/accepter", families.AcceptJoinRequestHandler)
	mux.HandleFunc("DELETE /families/demandes/{id}", families.RejectJoinRequestHandler)

	mux.HandleFunc("POST /families/{id}/invite", families.InviteMemberHandler)
	mux.HandleFunc("POST /families/invitations/{token}/accept", families.AcceptInvitationHandler)
	mux.HandleFunc("GET /families/invitations/pending", families.PendingInvitationsHandler)

	mux.HandleFunc("GET /families/{id}/contributions-recap", families.ContributionsRecapHandler)

	return mux
}
