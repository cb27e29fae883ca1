package http

import (
	"encoding/json"
	"net/http"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"

	"github.com/shopspring/decimal"
)

type LeavingHandler struct {
	leavingSvc service.LeavingRequestService
}

func NewLeavingHandler(leavingSvc service.LeavingRequestService) *LeavingHandler {
	return &LeavingHandler{leavingSvc: leavingSvc}
}

type createLeavingRequest struct {
	LeaveDate string `json:"leave_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
}

func (h *LeavingHandler) Create(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	var req createLeavingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	leaveDate, _ := time.Parse("2006-01-02", req.LeaveDate)
	created, err := h.leavingSvc.CreateRequest(r.Context(), memberID, leaveDate, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *LeavingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	requests, err := h.leavingSvc.ListMemberRequests(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaving_requests": requests})
}

func (h *LeavingHandler) List(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	status := domain.LeavingRequestStatus(r.URL.Query().Get("status"))
	requests, err := h.leavingSvc.ListRequests(r.Context(), pgType, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaving_requests": requests})
}

type approveLeavingRequest struct {
	SettlementAmount string `json:"settlement_amount" validate:"required"`
	ProofKey         string `json:"proof_key" validate:"omitempty"`
}

func (h *LeavingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	adminID, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid leaving request id")
		return
	}

	var req approveLeavingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	settlement, err := decimal.NewFromString(req.SettlementAmount)
	if err != nil {
		writeValidationError(w, map[string]string{"settlement_amount": "must be a decimal number"})
		return
	}

	approved, err := h.leavingSvc.Approve(r.Context(), adminID, pgType, id, settlement, req.ProofKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, approved)
}

func (h *LeavingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid leaving request id")
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	rejected, err := h.leavingSvc.Reject(r.Context(), adminID, pgType, id, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rejected)
}
