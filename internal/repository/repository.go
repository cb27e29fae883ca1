package repository

import (
	"context"
	"time"

	"pgnest-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id int32) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Update(ctx context.Context, admin *domain.Admin) error
}

type PGRepository interface {
	Create(ctx context.Context, pg *domain.PG) error
	GetByID(ctx context.Context, id int32) (*domain.PG, error)
	Update(ctx context.Context, pg *domain.PG) error
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int32) (*domain.Room, error)
	ListByPGType(ctx context.Context, pgType domain.PGType) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	AdjustOccupancy(ctx context.Context, roomID int32, delta int32) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	Deactivate(ctx context.Context, id int32, relievingDate time.Time) error
	ListByPGType(ctx context.Context, pgType domain.PGType, activeOnly bool) ([]domain.Member, error)
	ListByRentType(ctx context.Context, pgType domain.PGType, rentType domain.RentType) ([]domain.Member, error)
	CountByPGType(ctx context.Context, pgType domain.PGType) (total, active int32, err error)
	CountJoinsInMonth(ctx context.Context, pgType domain.PGType, month, year int) (int32, error)
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type RegisteredMemberRepository interface {
	Create(ctx context.Context, reg *domain.RegisteredMember) error
	GetByID(ctx context.Context, id int32) (*domain.RegisteredMember, error)
	GetPendingByPhone(ctx context.Context, phone string) (*domain.RegisteredMember, error)
	Update(ctx context.Context, reg *domain.RegisteredMember) error
	ListByPGType(ctx context.Context, pgType domain.PGType, status domain.RegistrationStatus) ([]domain.RegisteredMember, error)
	DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Promote converts an approved registration into a member in a single
	// transaction: member insert, room occupancy bump (when the member has
	// a room), first-payment insert, and the staging-row status update.
	// Nothing persists if any step fails.
	Promote(ctx context.Context, reg *domain.RegisteredMember, member *domain.Member, firstPayment *domain.Payment) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error

	// GetActiveForPeriod returns the non-rejected payment covering the
	// member's (month, year), or sql.ErrNoRows.
	GetActiveForPeriod(ctx context.Context, memberID int32, month, year int) (*domain.Payment, error)
	MaxAttemptNumber(ctx context.Context, memberID int32, month, year int) (int32, error)

	ListByMember(ctx context.Context, memberID int32) ([]domain.Payment, error)
	ListByPGType(ctx context.Context, pgType domain.PGType, paymentStatus, approvalStatus string, page, pageSize int32) ([]domain.Payment, int32, error)

	// MarkOverdue flips PENDING/PENDING payments past their overdue date
	// to OVERDUE. Idempotent; returns the number of rows flipped.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)

	// ApproveWithSuccessor persists the approved payment and, when next is
	// non-nil, inserts the successor payment in the same transaction.
	ApproveWithSuccessor(ctx context.Context, payment *domain.Payment, next *domain.Payment) error

	SumCollectedInMonth(ctx context.Context, pgType domain.PGType, month, year int) (decimal.Decimal, error)
	CountByPaymentStatusInMonth(ctx context.Context, pgType domain.PGType, status domain.PaymentStatus, month, year int) (int32, error)
	SumPendingDues(ctx context.Context, memberID int32) (decimal.Decimal, error)
}

type LeavingRequestRepository interface {
	Create(ctx context.Context, req *domain.LeavingRequest) error
	GetByID(ctx context.Context, id int32) (*domain.LeavingRequest, error)
	GetPendingByMember(ctx context.Context, memberID int32) (*domain.LeavingRequest, error)
	Update(ctx context.Context, req *domain.LeavingRequest) error
	ListByMember(ctx context.Context, memberID int32) ([]domain.LeavingRequest, error)
	ListByPGType(ctx context.Context, pgType domain.PGType, status domain.LeavingRequestStatus) ([]domain.LeavingRequest, error)

	// ApproveAndRelease settles a departure in a single transaction: the
	// request update, the member deactivation, and the room slot release
	// (when roomID is non-nil). Nothing persists if any step fails.
	ApproveAndRelease(ctx context.Context, req *domain.LeavingRequest, roomID *int32) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id int32) (*domain.Expense, error)
	Delete(ctx context.Context, id int32) error
	ListByMonth(ctx context.Context, pgType domain.PGType, month, year int) ([]domain.Expense, error)
	SumByMonth(ctx context.Context, pgType domain.PGType, month, year int) (decimal.Decimal, error)
	CategoryTotals(ctx context.Context, pgType domain.PGType, month, year int) (map[string]decimal.Decimal, error)
}

type StatsRepository interface {
	UpsertDashboardStats(ctx context.Context, stats *domain.DashboardStats) error
	GetDashboardStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.DashboardStats, error)
	UpsertExpenseStats(ctx context.Context, stats *domain.ExpenseStats) error
	GetExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error)
}
