package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, member_id, pg_id, amount, month, year, attempt_number, screenshot_key, payment_status, approval_status, due_date, overdue_date, paid_date, approved_at, approved_by, rejection_reason, created_on, updated_on`

const insertPaymentQuery = `INSERT INTO payments (member_id, pg_id, amount, month, year, attempt_number, screenshot_key, payment_status, approval_status, due_date, overdue_date, paid_date, approved_at, approved_by, rejection_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.QueryRowContext(ctx, insertPaymentQuery,
		p.MemberID, p.PGID, p.Amount, p.Month, p.Year, p.AttemptNumber, p.ScreenshotKey,
		p.PaymentStatus, p.ApprovalStatus, p.DueDate, p.OverdueDate, p.PaidDate,
		p.ApprovedAt, p.ApprovedBy, p.RejectionReason, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	err := scanPayment(r.db.QueryRowContext(ctx, query, id), p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET amount=$1, screenshot_key=$2, payment_status=$3, approval_status=$4, paid_date=$5, approved_at=$6, approved_by=$7, rejection_reason=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, p.Amount, p.ScreenshotKey, p.PaymentStatus,
		p.ApprovalStatus, p.PaidDate, p.ApprovedAt, p.ApprovedBy, p.RejectionReason, time.Now(), p.ID)
	return err
}

func (r *paymentRepository) GetActiveForPeriod(ctx context.Context, memberID int32, month, year int) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments
	          WHERE member_id = $1 AND month = $2 AND year = $3 AND approval_status <> 'REJECTED'
	          ORDER BY attempt_number DESC LIMIT 1`
	err := scanPayment(r.db.QueryRowContext(ctx, query, memberID, month, year), p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) MaxAttemptNumber(ctx context.Context, memberID int32, month, year int) (int32, error) {
	query := `SELECT COALESCE(MAX(attempt_number), 0) FROM payments WHERE member_id = $1 AND month = $2 AND year = $3`
	var max int32
	err := r.db.QueryRowContext(ctx, query, memberID, month, year).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

func (r *paymentRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE member_id = $1 ORDER BY year DESC, month DESC, attempt_number DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *paymentRepository) ListByPGType(ctx context.Context, pgType domain.PGType, paymentStatus, approvalStatus string, page, pageSize int32) ([]domain.Payment, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT py.id, py.member_id, py.pg_id, py.amount, py.month, py.year, py.attempt_number, py.screenshot_key, py.payment_status, py.approval_status, py.due_date, py.overdue_date, py.paid_date, py.approved_at, py.approved_by, py.rejection_reason, py.created_on, py.updated_on
	        FROM payments py JOIN pgs p ON py.pg_id = p.id WHERE p.pg_type = $1`

	args := []interface{}{pgType}
	argIdx := 2
	if paymentStatus != "" {
		query += fmt.Sprintf(" AND py.payment_status = $%d", argIdx)
		args = append(args, paymentStatus)
		argIdx++
	}
	if approvalStatus != "" {
		query += fmt.Sprintf(" AND py.approval_status = $%d", argIdx)
		args = append(args, approvalStatus)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY py.due_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return payments, count, nil
}

func (r *paymentRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE payments SET payment_status = 'OVERDUE', updated_on = $1
	          WHERE payment_status = 'PENDING' AND approval_status = 'PENDING' AND overdue_date < $2`
	res, err := r.db.ExecContext(ctx, query, time.Now(), now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *paymentRepository) ApproveWithSuccessor(ctx context.Context, p *domain.Payment, next *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `UPDATE payments SET payment_status=$1, approval_status=$2, paid_date=$3, approved_at=$4, approved_by=$5, updated_on=$6 WHERE id=$7`
	if _, err := tx.ExecContext(ctx, updateQuery, p.PaymentStatus, p.ApprovalStatus, p.PaidDate, p.ApprovedAt, p.ApprovedBy, time.Now(), p.ID); err != nil {
		return err
	}

	if next != nil {
		if err := tx.QueryRowContext(ctx, insertPaymentQuery,
			next.MemberID, next.PGID, next.Amount, next.Month, next.Year, next.AttemptNumber,
			next.ScreenshotKey, next.PaymentStatus, next.ApprovalStatus, next.DueDate,
			next.OverdueDate, next.PaidDate, next.ApprovedAt, next.ApprovedBy,
			next.RejectionReason, time.Now(), time.Now()).Scan(&next.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *paymentRepository) SumCollectedInMonth(ctx context.Context, pgType domain.PGType, month, year int) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(py.amount), 0) FROM payments py JOIN pgs p ON py.pg_id = p.id
	          WHERE p.pg_type = $1 AND py.month = $2 AND py.year = $3 AND py.approval_status = 'APPROVED'`
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, pgType, month, year).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *paymentRepository) CountByPaymentStatusInMonth(ctx context.Context, pgType domain.PGType, status domain.PaymentStatus, month, year int) (int32, error) {
	query := `SELECT count(*) FROM payments py JOIN pgs p ON py.pg_id = p.id
	          WHERE p.pg_type = $1 AND py.payment_status = $2 AND py.month = $3 AND py.year = $4`
	var count int32
	err := r.db.QueryRowContext(ctx, query, pgType, status, month, year).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *paymentRepository) SumPendingDues(ctx context.Context, memberID int32) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments
	          WHERE member_id = $1 AND approval_status = 'PENDING' AND payment_status IN ('PENDING', 'OVERDUE')`
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func scanPayment(row rowScanner, p *domain.Payment) error {
	return row.Scan(&p.ID, &p.MemberID, &p.PGID, &p.Amount, &p.Month, &p.Year, &p.AttemptNumber,
		&p.ScreenshotKey, &p.PaymentStatus, &p.ApprovalStatus, &p.DueDate, &p.OverdueDate,
		&p.PaidDate, &p.ApprovedAt, &p.ApprovedBy, &p.RejectionReason, &p.CreatedOn, &p.UpdatedOn)
}

func scanPayments(rows *sql.Rows) ([]domain.Payment, error) {
	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
