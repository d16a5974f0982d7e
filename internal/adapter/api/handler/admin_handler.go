package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/user/build-triage/internal/usecase"
)

// AdminHandler handles HTTP requests on the admin server.
type AdminHandler struct {
	usage  *usecase.UsageReportUseCase // nil when usage tracking is disabled
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(usage *usecase.UsageReportUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{usage: usage, logger: logger}
}

// HealthCheck is a simple health check endpoint.
func (h *AdminHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// GetUsage reports collaborator usage for a lookback period.
// GET /admin/usage?period=24h
func (h *AdminHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	if h.usage == nil {
		http.Error(w, "usage tracking is not configured", http.StatusNotImplemented)
		return
	}

	period := r.URL.Query().Get("period")
	summary, err := h.usage.Report(r.Context(), period)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to build usage report", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.respondWithJSON(w, http.StatusOK, summary)
}

func (h *AdminHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
