package service

import (
	"context"
	"errors"
	"time"

	"pgnest-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Domain errors surfaced to the API layer for status-code mapping.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrForbidden             = errors.New("operation not permitted for this account")
	ErrInactiveMember        = errors.New("member is not active")
	ErrDuplicatePayment      = errors.New("a payment for this month already exists")
	ErrAlreadyProcessed      = errors.New("request has already been processed")
	ErrDuplicateRegistration = errors.New("a pending registration with this phone already exists")
	ErrRoomFull              = errors.New("room has no vacancy")
	ErrPendingLeavingRequest = errors.New("a pending leaving request already exists")
)

type AuthService interface {
	AdminLogin(ctx context.Context, email, password string) (string, *domain.Admin, error)
	MemberLogin(ctx context.Context, phone, password string) (string, *domain.Member, error)
}

type RegistrationService interface {
	Register(ctx context.Context, reg *domain.RegisteredMember, password string) error
	ListPending(ctx context.Context, pgType domain.PGType) ([]domain.RegisteredMember, error)
	Approve(ctx context.Context, adminID int32, pgType domain.PGType, registrationID int32, roomID *int32) (*domain.Member, error)
	Reject(ctx context.Context, adminID int32, pgType domain.PGType, registrationID int32, reason string) error
}

// MemberUpdate carries the mutable member fields; nil means unchanged.
type MemberUpdate struct {
	Name   *string
	Phone  *string
	Email  *string
	RoomID *int32
}

type MemberService interface {
	GetMember(ctx context.Context, pgType domain.PGType, id int32) (*domain.Member, error)
	GetProfile(ctx context.Context, memberID int32) (*domain.Member, *domain.Room, error)
	ListMembers(ctx context.Context, pgType domain.PGType, activeOnly bool) ([]domain.Member, error)
	ListMembersByRentType(ctx context.Context, pgType domain.PGType, rentType domain.RentType) ([]domain.Member, error)
	UpdateMember(ctx context.Context, pgType domain.PGType, id int32, update MemberUpdate) (*domain.Member, error)
	DeactivateMember(ctx context.Context, pgType domain.PGType, id int32) error
}

type PaymentService interface {
	// UploadPayment records a member's payment claim for a service month.
	// Returns ErrDuplicatePayment when a non-rejected payment already
	// covers (month, year).
	UploadPayment(ctx context.Context, memberID int32, month, year int, amount decimal.Decimal, screenshotKey string) (*domain.Payment, error)

	ListMemberPayments(ctx context.Context, memberID int32) ([]domain.Payment, error)
	ListPayments(ctx context.Context, pgType domain.PGType, paymentStatus, approvalStatus string, page, pageSize int32) ([]domain.Payment, int32, error)

	ApprovePayment(ctx context.Context, adminID int32, pgType domain.PGType, paymentID int32) (*domain.Payment, error)
	RejectPayment(ctx context.Context, adminID int32, pgType domain.PGType, paymentID int32, reason string) (*domain.Payment, error)

	// SweepOverdue flips stale PENDING payments to OVERDUE. Called at
	// read time by the dashboard, reports, and payment lists.
	SweepOverdue(ctx context.Context) (int64, error)
}

type LeavingRequestService interface {
	CreateRequest(ctx context.Context, memberID int32, leaveDate time.Time, reason string) (*domain.LeavingRequest, error)
	ListMemberRequests(ctx context.Context, memberID int32) ([]domain.LeavingRequest, error)
	ListRequests(ctx context.Context, pgType domain.PGType, status domain.LeavingRequestStatus) ([]domain.LeavingRequest, error)
	Approve(ctx context.Context, adminID int32, pgType domain.PGType, requestID int32, settlementAmount decimal.Decimal, proofKey string) (*domain.LeavingRequest, error)
	Reject(ctx context.Context, adminID int32, pgType domain.PGType, requestID int32, reason string) (*domain.LeavingRequest, error)
}

type ExpenseService interface {
	AddExpense(ctx context.Context, adminID int32, pgType domain.PGType, expense *domain.Expense) error
	ListExpenses(ctx context.Context, pgType domain.PGType, month, year int) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, pgType domain.PGType, id int32) error

	// GetExpenseStats returns the materialized rollup, computing and
	// caching it when absent.
	GetExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error)
	RecomputeExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error)
}

// TrendDelta pairs a current-month value with the previous month's for
// dashboard deltas.
type TrendDelta struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Delta    decimal.Decimal `json:"delta"`
}

// DashboardSummary is the dashboard read model.
type DashboardSummary struct {
	PGType          domain.PGType `json:"pg_type"`
	Month           int           `json:"month"`
	Year            int           `json:"year"`
	TotalMembers    int32         `json:"total_members"`
	ActiveMembers   int32         `json:"active_members"`
	NewJoins        int32         `json:"new_joins"`
	PendingPayments int32         `json:"pending_payments"`
	OverduePayments int32         `json:"overdue_payments"`
	Collection      TrendDelta    `json:"collection"`
	Expenses        TrendDelta    `json:"expenses"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context, pgType domain.PGType) (*DashboardSummary, error)
}

type ReportService interface {
	// MemberReport builds the downloadable ZIP (CSVs plus trend chart)
	// for the given billing month. Returns the archive and a filename.
	MemberReport(ctx context.Context, pgType domain.PGType, month, year int) ([]byte, string, error)
}

type RoomService interface {
	AddRoom(ctx context.Context, pgType domain.PGType, room *domain.Room) error
	ListRooms(ctx context.Context, pgType domain.PGType) ([]domain.Room, error)
}

type EmailService interface {
	SendRegistrationApproved(ctx context.Context, email, name, pgName string) error
	SendRegistrationRejected(ctx context.Context, email, name, reason string) error
	SendPaymentReceipt(ctx context.Context, email, name string, amount decimal.Decimal, month, year int) error
	SendPaymentRejected(ctx context.Context, email, name string, month, year int, reason string) error
	SendLeavingSettlement(ctx context.Context, email, name string, settlement decimal.Decimal) error
}
