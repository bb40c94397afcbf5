package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
}

func registerSyncRoutes(mux *http.ServeMux, handler *Handler, syncToken string) {
	// Method-qualified pattern: anything but POST (or the OPTIONS preflight
	// answered by the CORS middleware) gets the mux's 405.
	mux.Handle("POST /v1/internal/sync/production", RequireSyncToken(syncToken, http.HandlerFunc(handler.SyncProduction)))
}
