package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/fleetops/fleet-sync/internal/usecase"
)

type Handler struct {
	syncService *usecase.SyncService
	teamService *usecase.TeamService
	logger      *slog.Logger
	maxBodySize int64
}

func NewHandler(
	syncService *usecase.SyncService,
	teamService *usecase.TeamService,
	logger *slog.Logger,
	maxBodySize int64,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		syncService: syncService,
		teamService: teamService,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamDTO{ID: t.ID, Name: t.Name})
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
