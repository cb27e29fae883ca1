package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusOverdue  PaymentStatus = "OVERDUE"
	PaymentStatusRejected PaymentStatus = "REJECTED"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// Payment tracks one billing attempt for a member's service month.
// paymentStatus and approvalStatus are independent axes: paymentStatus
// follows the money (pending/paid/overdue), approvalStatus follows the
// admin's verification of the submitted proof.
type Payment struct {
	ID              int32           `json:"id"`
	MemberID        int32           `json:"member_id"`
	PGID            int32           `json:"pg_id"`
	Amount          decimal.Decimal `json:"amount"`
	Month           int             `json:"month"` // 1-12, service month
	Year            int             `json:"year"`
	AttemptNumber   int32           `json:"attempt_number"`
	ScreenshotKey   string          `json:"screenshot_key,omitempty"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	ApprovalStatus  ApprovalStatus  `json:"approval_status"`
	DueDate         time.Time       `json:"due_date"`
	OverdueDate     time.Time       `json:"overdue_date"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy      *int32          `json:"approved_by,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}

// IsSettled reports whether this payment closes its billing period.
func (p *Payment) IsSettled() bool {
	return p.ApprovalStatus == ApprovalStatusApproved && p.PaymentStatus == PaymentStatusPaid
}

// IsActiveAttempt reports whether this row blocks a new attempt for the
// same (month, year). Rejected attempts do not.
func (p *Payment) IsActiveAttempt() bool {
	return p.ApprovalStatus != ApprovalStatusRejected
}
