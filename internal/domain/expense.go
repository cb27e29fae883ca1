package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseCategoryGroceries   ExpenseCategory = "GROCERIES"
	ExpenseCategoryUtilities   ExpenseCategory = "UTILITIES"
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategorySalaries    ExpenseCategory = "SALARIES"
	ExpenseCategoryRent        ExpenseCategory = "RENT"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

type Expense struct {
	ID            int32           `json:"id"`
	PGID          int32           `json:"pg_id"`
	Category      ExpenseCategory `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaidTo        string          `json:"paid_to,omitempty"`
	PaidOn        time.Time       `json:"paid_on"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	RecordedBy    *int32          `json:"recorded_by,omitempty"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}
