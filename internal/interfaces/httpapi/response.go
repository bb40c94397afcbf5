package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	cockroacherrors "github.com/cockroachdb/errors"

	"github.com/fleetops/fleet-sync/internal/domain/payload"
	"github.com/fleetops/fleet-sync/internal/domain/production"
	"github.com/fleetops/fleet-sync/internal/usecase"
)

type syncResponse struct {
	Success       bool   `json:"success"`
	Inserted      int    `json:"inserted"`
	Ignored       int    `json:"ignored"`
	TotalReceived int    `json:"total_received"`
	Timestamp     string `json:"timestamp"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Hint    string `json:"hint,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(body)
}

func writeSyncReport(ctx context.Context, w http.ResponseWriter, report production.SyncReport) {
	writeJSON(ctx, w, http.StatusOK, syncResponse{
		Success:       true,
		Inserted:      report.Inserted,
		Ignored:       report.Ignored,
		TotalReceived: report.TotalReceived,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	writeJSON(ctx, w, statusForError(err), errorResponse{
		Success: false,
		Error:   err.Error(),
		Hint:    cockroacherrors.FlattenHints(err),
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{
		Success: false,
		Error:   "internal server error",
	})
}

// statusForError maps the pipeline's error taxonomy to HTTP statuses: payload
// faults are the client's (400), store faults are ours (500).
func statusForError(err error) int {
	switch {
	case errors.Is(err, payload.ErrEmptyPayload),
		errors.Is(err, payload.ErrUnparsablePayload),
		errors.Is(err, usecase.ErrNoRowsFound),
		errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrStorageFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
