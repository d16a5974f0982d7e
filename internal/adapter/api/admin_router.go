package api

import (
	"log/slog"
	"net/http"

	"github.com/user/build-triage/internal/adapter/api/handler"
	"github.com/user/build-triage/internal/usecase"
)

// NewAdminRouter creates and configures the HTTP router for admin operations.
// The metrics endpoint is mounted separately by the caller.
func NewAdminRouter(usageUC *usecase.UsageReportUseCase, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	adminHandler := handler.NewAdminHandler(usageUC, logger)

	mux.HandleFunc("GET /health", adminHandler.HealthCheck)
	mux.HandleFunc("GET /admin/usage", adminHandler.GetUsage)

	return mux
}
