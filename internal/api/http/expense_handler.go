package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"

	"github.com/shopspring/decimal"
)

type ExpenseHandler struct {
	expenseSvc service.ExpenseService
}

func NewExpenseHandler(expenseSvc service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseSvc: expenseSvc}
}

type addExpenseRequest struct {
	PGID          int32  `json:"pg_id" validate:"required"`
	Category      string `json:"category" validate:"required,oneof=GROCERIES UTILITIES MAINTENANCE SALARIES RENT OTHER"`
	Description   string `json:"description" validate:"required,min=3,max=500"`
	Amount        string `json:"amount" validate:"required"`
	PaidTo        string `json:"paid_to" validate:"omitempty,max=100"`
	PaidOn        string `json:"paid_on" validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,max=50"`
}

func (h *ExpenseHandler) Add(w http.ResponseWriter, r *http.Request) {
	adminID, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	var req addExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		writeValidationError(w, map[string]string{"amount": "must be a positive decimal number"})
		return
	}
	paidOn, _ := time.Parse("2006-01-02", req.PaidOn)

	expense := &domain.Expense{
		PGID:          req.PGID,
		Category:      domain.ExpenseCategory(req.Category),
		Description:   req.Description,
		Amount:        amount,
		PaidTo:        req.PaidTo,
		PaidOn:        paidOn,
		PaymentMethod: req.PaymentMethod,
	}
	if err := h.expenseSvc.AddExpense(r.Context(), adminID, pgType, expense); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// monthYearQuery parses ?month=&year=, defaulting to the current month.
func monthYearQuery(r *http.Request) (int, int) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()
	if v, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && v >= 1 && v <= 12 {
		month = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && v > 0 {
		year = v
	}
	return month, year
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	month, year := monthYearQuery(r)
	expenses, err := h.expenseSvc.ListExpenses(r.Context(), pgType, month, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"expenses": expenses, "month": month, "year": year})
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := h.expenseSvc.DeleteExpense(r.Context(), pgType, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ExpenseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	month, year := monthYearQuery(r)
	stats, err := h.expenseSvc.GetExpenseStats(r.Context(), pgType, month, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
