package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pgnest-backend/internal/service"
	"pgnest-backend/internal/storage"

	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentSvc  service.PaymentService
	store       storage.Storage
	maxFileSize int64
}

func NewPaymentHandler(paymentSvc service.PaymentService, store storage.Storage, maxFileSizeMB int64) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc:  paymentSvc,
		store:       store,
		maxFileSize: maxFileSizeMB << 20,
	}
}

type uploadPaymentForm struct {
	Month  int    `validate:"required,min=1,max=12"`
	Year   int    `validate:"required,min=2000,max=2100"`
	Amount string `validate:"required"`
}

// Upload handles a member's multipart payment submission: service month,
// amount, and the payment screenshot.
func (h *PaymentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	form := uploadPaymentForm{Amount: r.FormValue("amount")}
	form.Month, _ = strconv.Atoi(r.FormValue("month"))
	form.Year, _ = strconv.Atoi(r.FormValue("year"))
	if fields := validateStruct(form); fields != nil {
		writeValidationError(w, fields)
		return
	}

	amount, err := decimal.NewFromString(form.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		writeValidationError(w, map[string]string{"amount": "must be a positive decimal number"})
		return
	}

	file, header, err := r.FormFile("screenshot")
	if err != nil {
		writeValidationError(w, map[string]string{"screenshot": "payment screenshot is required"})
		return
	}
	defer file.Close()

	key, err := h.store.Save(r.Context(), storage.CategoryPayments, header.Filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store screenshot")
		return
	}

	payment, err := h.paymentSvc.UploadPayment(r.Context(), memberID, form.Month, form.Year, amount, key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	payments, err := h.paymentSvc.ListMemberPayments(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payments": payments})
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	payments, total, err := h.paymentSvc.ListPayments(r.Context(), pgType,
		q.Get("payment_status"), q.Get("approval_status"), int32(page), int32(pageSize))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payments": payments, "total": total})
}

func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	adminID, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := h.paymentSvc.ApprovePayment(r.Context(), adminID, pgType, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
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

	payment, err := h.paymentSvc.RejectPayment(r.Context(), adminID, pgType, id, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
