package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/fleetops/fleet-sync/internal/usecase"
)

// SyncProduction runs the reconciliation pipeline against the request body.
// The body is read raw: payload tolerance (concatenated documents, legacy
// field names) is the pipeline's job, not the transport's.
func (h *Handler) SyncProduction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncProduction")
	defer span.End()

	reader := r.Body
	if h.maxBodySize > 0 {
		reader = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	report, err := h.syncService.Sync(ctx, body)
	if err != nil {
		h.logger.WarnContext(ctx, "production sync failed", "body_bytes", len(body), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSyncReport(ctx, w, report)
}
