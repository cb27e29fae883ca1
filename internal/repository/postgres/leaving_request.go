package postgres

import (
	"context"
	"database/sql"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"
)

type leavingRequestRepository struct {
	db *sql.DB
}

func NewLeavingRequestRepository(db *sql.DB) repository.LeavingRequestRepository {
	return &leavingRequestRepository{db: db}
}

const leavingColumns = `id, member_id, pg_id, requested_leave_date, reason, status, pending_dues, settlement_amount, settlement_proof_key, settled_at, processed_by, created_on, updated_on`

func (r *leavingRequestRepository) Create(ctx context.Context, lr *domain.LeavingRequest) error {
	query := `INSERT INTO leaving_requests (member_id, pg_id, requested_leave_date, reason, status, pending_dues, settlement_amount, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, lr.MemberID, lr.PGID, lr.RequestedLeaveDate, lr.Reason,
		lr.Status, lr.PendingDues, lr.SettlementAmount, time.Now(), time.Now()).Scan(&lr.ID)
}

func (r *leavingRequestRepository) GetByID(ctx context.Context, id int32) (*domain.LeavingRequest, error) {
	lr := &domain.LeavingRequest{}
	query := `SELECT ` + leavingColumns + ` FROM leaving_requests WHERE id = $1`
	err := scanLeavingRequest(r.db.QueryRowContext(ctx, query, id), lr)
	if err != nil {
		return nil, err
	}
	return lr, nil
}

func (r *leavingRequestRepository) GetPendingByMember(ctx context.Context, memberID int32) (*domain.LeavingRequest, error) {
	lr := &domain.LeavingRequest{}
	query := `SELECT ` + leavingColumns + ` FROM leaving_requests WHERE member_id = $1 AND status = 'PENDING'`
	err := scanLeavingRequest(r.db.QueryRowContext(ctx, query, memberID), lr)
	if err != nil {
		return nil, err
	}
	return lr, nil
}

const updateLeavingRequestQuery = `UPDATE leaving_requests SET status=$1, pending_dues=$2, settlement_amount=$3, settlement_proof_key=$4, settled_at=$5, processed_by=$6, updated_on=$7 WHERE id=$8`

func (r *leavingRequestRepository) Update(ctx context.Context, lr *domain.LeavingRequest) error {
	_, err := r.db.ExecContext(ctx, updateLeavingRequestQuery, lr.Status, lr.PendingDues, lr.SettlementAmount,
		lr.SettlementProofKey, lr.SettledAt, lr.ProcessedBy, time.Now(), lr.ID)
	return err
}

// ApproveAndRelease settles a departure atomically: request update, member
// deactivation, and room slot release commit together or not at all.
func (r *leavingRequestRepository) ApproveAndRelease(ctx context.Context, lr *domain.LeavingRequest, roomID *int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, updateLeavingRequestQuery, lr.Status, lr.PendingDues,
		lr.SettlementAmount, lr.SettlementProofKey, lr.SettledAt, lr.ProcessedBy, time.Now(), lr.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, deactivateMemberQuery, lr.RequestedLeaveDate, time.Now(), lr.MemberID); err != nil {
		return err
	}

	if roomID != nil {
		res, err := tx.ExecContext(ctx, adjustOccupancyQuery, int32(-1), time.Now(), *roomID)
		if err != nil {
			return err
		}
		if err := checkOccupancyAdjusted(res, *roomID, -1); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *leavingRequestRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.LeavingRequest, error) {
	query := `SELECT ` + leavingColumns + ` FROM leaving_requests WHERE member_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeavingRequests(rows)
}

func (r *leavingRequestRepository) ListByPGType(ctx context.Context, pgType domain.PGType, status domain.LeavingRequestStatus) ([]domain.LeavingRequest, error) {
	query := `SELECT lr.id, lr.member_id, lr.pg_id, lr.requested_leave_date, lr.reason, lr.status, lr.pending_dues, lr.settlement_amount, lr.settlement_proof_key, lr.settled_at, lr.processed_by, lr.created_on, lr.updated_on
	          FROM leaving_requests lr JOIN pgs p ON lr.pg_id = p.id WHERE p.pg_type = $1`
	args := []interface{}{pgType}
	if status != "" {
		query += " AND lr.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY lr.requested_leave_date"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeavingRequests(rows)
}

func scanLeavingRequest(row rowScanner, lr *domain.LeavingRequest) error {
	return row.Scan(&lr.ID, &lr.MemberID, &lr.PGID, &lr.RequestedLeaveDate, &lr.Reason, &lr.Status,
		&lr.PendingDues, &lr.SettlementAmount, &lr.SettlementProofKey, &lr.SettledAt,
		&lr.ProcessedBy, &lr.CreatedOn, &lr.UpdatedOn)
}

func scanLeavingRequests(rows *sql.Rows) ([]domain.LeavingRequest, error) {
	var reqs []domain.LeavingRequest
	for rows.Next() {
		var lr domain.LeavingRequest
		if err := scanLeavingRequest(rows, &lr); err != nil {
			return nil, err
		}
		reqs = append(reqs, lr)
	}
	return reqs, rows.Err()
}
