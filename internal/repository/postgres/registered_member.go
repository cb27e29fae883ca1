package postgres

import (
	"context"
	"database/sql"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"
)

type registeredMemberRepository struct {
	db *sql.DB
}

func NewRegisteredMemberRepository(db *sql.DB) repository.RegisteredMemberRepository {
	return &registeredMemberRepository{db: db}
}

const regColumns = `id, pg_id, room_id, name, phone, email, password_hash, photo_key, document_key, date_of_joining, rent_type, date_of_relieving, advance_amount, status, rejection_reason, processed_by, created_on, updated_on`

func (r *registeredMemberRepository) Create(ctx context.Context, reg *domain.RegisteredMember) error {
	query := `INSERT INTO registered_members (pg_id, room_id, name, phone, email, password_hash, photo_key, document_key, date_of_joining, rent_type, date_of_relieving, advance_amount, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		reg.PGID, reg.RoomID, reg.Name, reg.Phone, reg.Email, reg.PasswordHash, reg.PhotoKey,
		reg.DocumentKey, reg.DateOfJoining, reg.RentType, reg.DateOfRelieving, reg.AdvanceAmount,
		reg.Status, time.Now(), time.Now()).Scan(&reg.ID)
}

func (r *registeredMemberRepository) GetByID(ctx context.Context, id int32) (*domain.RegisteredMember, error) {
	reg := &domain.RegisteredMember{}
	query := `SELECT ` + regColumns + ` FROM registered_members WHERE id = $1`
	err := scanRegisteredMember(r.db.QueryRowContext(ctx, query, id), reg)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *registeredMemberRepository) GetPendingByPhone(ctx context.Context, phone string) (*domain.RegisteredMember, error) {
	reg := &domain.RegisteredMember{}
	query := `SELECT ` + regColumns + ` FROM registered_members WHERE phone = $1 AND status = 'PENDING'`
	err := scanRegisteredMember(r.db.QueryRowContext(ctx, query, phone), reg)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

const updateRegistrationQuery = `UPDATE registered_members SET room_id=$1, status=$2, rejection_reason=$3, processed_by=$4, updated_on=$5 WHERE id=$6`

func (r *registeredMemberRepository) Update(ctx context.Context, reg *domain.RegisteredMember) error {
	_, err := r.db.ExecContext(ctx, updateRegistrationQuery, reg.RoomID, reg.Status, reg.RejectionReason, reg.ProcessedBy, time.Now(), reg.ID)
	return err
}

// Promote turns an approved registration into a live member atomically:
// member insert, room slot claim, first-payment insert, and the staging-row
// update all commit together or not at all.
func (r *registeredMemberRepository) Promote(ctx context.Context, reg *domain.RegisteredMember, m *domain.Member, firstPayment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, insertMemberQuery,
		m.PGID, m.RoomID, m.Name, m.Phone, m.Email, m.PasswordHash, m.PhotoKey, m.DocumentKey,
		m.DateOfJoining, m.RentType, m.DateOfRelieving, m.PricePerDay, m.AdvanceAmount,
		m.IsActive, m.ApprovedBy, time.Now(), time.Now()).Scan(&m.ID); err != nil {
		return err
	}

	if m.RoomID != nil {
		res, err := tx.ExecContext(ctx, adjustOccupancyQuery, int32(1), time.Now(), *m.RoomID)
		if err != nil {
			return err
		}
		if err := checkOccupancyAdjusted(res, *m.RoomID, 1); err != nil {
			return err
		}
	}

	firstPayment.MemberID = m.ID
	if err := tx.QueryRowContext(ctx, insertPaymentQuery,
		firstPayment.MemberID, firstPayment.PGID, firstPayment.Amount, firstPayment.Month,
		firstPayment.Year, firstPayment.AttemptNumber, firstPayment.ScreenshotKey,
		firstPayment.PaymentStatus, firstPayment.ApprovalStatus, firstPayment.DueDate,
		firstPayment.OverdueDate, firstPayment.PaidDate, firstPayment.ApprovedAt,
		firstPayment.ApprovedBy, firstPayment.RejectionReason, time.Now(), time.Now()).Scan(&firstPayment.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, updateRegistrationQuery,
		reg.RoomID, reg.Status, reg.RejectionReason, reg.ProcessedBy, time.Now(), reg.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *registeredMemberRepository) ListByPGType(ctx context.Context, pgType domain.PGType, status domain.RegistrationStatus) ([]domain.RegisteredMember, error) {
	query := `SELECT rm.id, rm.pg_id, rm.room_id, rm.name, rm.phone, rm.email, rm.password_hash, rm.photo_key, rm.document_key, rm.date_of_joining, rm.rent_type, rm.date_of_relieving, rm.advance_amount, rm.status, rm.rejection_reason, rm.processed_by, rm.created_on, rm.updated_on
	          FROM registered_members rm JOIN pgs p ON rm.pg_id = p.id WHERE p.pg_type = $1 AND rm.status = $2 ORDER BY rm.created_on`
	rows, err := r.db.QueryContext(ctx, query, pgType, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []domain.RegisteredMember
	for rows.Next() {
		var reg domain.RegisteredMember
		if err := scanRegisteredMember(rows, &reg); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registeredMemberRepository) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM registered_members WHERE status <> 'PENDING' AND updated_on < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanRegisteredMember(row rowScanner, reg *domain.RegisteredMember) error {
	return row.Scan(&reg.ID, &reg.PGID, &reg.RoomID, &reg.Name, &reg.Phone, &reg.Email,
		&reg.PasswordHash, &reg.PhotoKey, &reg.DocumentKey, &reg.DateOfJoining, &reg.RentType,
		&reg.DateOfRelieving, &reg.AdvanceAmount, &reg.Status, &reg.RejectionReason,
		&reg.ProcessedBy, &reg.CreatedOn, &reg.UpdatedOn)
}
