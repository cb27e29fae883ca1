package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeavingRequestStatus string

const (
	LeavingRequestStatusPending  LeavingRequestStatus = "PENDING"
	LeavingRequestStatusApproved LeavingRequestStatus = "APPROVED"
	LeavingRequestStatusRejected LeavingRequestStatus = "REJECTED"
)

type LeavingRequest struct {
	ID                 int32                `json:"id"`
	MemberID           int32                `json:"member_id"`
	PGID               int32                `json:"pg_id"`
	RequestedLeaveDate time.Time            `json:"requested_leave_date"`
	Reason             string               `json:"reason,omitempty"`
	Status             LeavingRequestStatus `json:"status"`
	PendingDues        decimal.Decimal      `json:"pending_dues"`
	SettlementAmount   decimal.Decimal      `json:"settlement_amount"`
	SettlementProofKey string               `json:"settlement_proof_key,omitempty"`
	SettledAt          *time.Time           `json:"settled_at,omitempty"`
	ProcessedBy        *int32               `json:"processed_by,omitempty"`
	CreatedOn          time.Time            `json:"created_on"`
	UpdatedOn          time.Time            `json:"updated_on"`
}
