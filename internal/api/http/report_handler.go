package http

import (
	"fmt"
	"net/http"

	"pgnest-backend/internal/service"
)

type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Download streams the monthly report archive for the admin's hostel
// type. Month and year default to the current billing month.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	month, year := monthYearQuery(r)
	archive, filename, err := h.reportSvc.MemberReport(r.Context(), pgType, month, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(archive)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
