package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/search", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("POST /v1/players/load", handler.LoadPlayers)
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/drafts", handler.CreateDraft)
	mux.HandleFunc("GET /v1/drafts/current", handler.CurrentDraft)
	mux.HandleFunc("GET /v1/drafts/{draftID}", handler.GetDraft)
	mux.HandleFunc("POST /v1/drafts/{draftID}/picks", handler.MakePick)
	mux.HandleFunc("DELETE /v1/drafts/{draftID}/picks/{pickNumber}", handler.RevertPick)
	mux.HandleFunc("POST /v1/drafts/{draftID}/restart", handler.RestartDraft)
	mux.HandleFunc("GET /v1/drafts/{draftID}/players/available", handler.ListAvailablePlayers)
	mux.HandleFunc("GET /v1/drafts/{draftID}/teams/{teamName}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /v1/drafts/{draftID}/teams/{teamName}/players", handler.ListTeamPlayers)
	mux.HandleFunc("GET /v1/drafts/{draftID}/standings", handler.GetStandings)
	mux.HandleFunc("POST /v1/drafts/{draftID}/standings/preview", handler.PreviewStandings)
	mux.HandleFunc("GET /v1/drafts/{draftID}/recommendations", handler.GetRecommendations)
}

func registerSimulationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/simulations", handler.RunSimulation)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/internal/players/refresh", RequireAdminToken(adminToken, http.HandlerFunc(handler.RefreshPlayers)))
}
