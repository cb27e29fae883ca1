package http

import (
	"net/http"

	"pgnest-backend/internal/service"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	summary, err := h.dashboardSvc.GetDashboard(r.Context(), pgType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
