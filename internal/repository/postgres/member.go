package postgres

import (
	"context"
	"database/sql"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, pg_id, room_id, name, phone, email, password_hash, photo_key, document_key, date_of_joining, rent_type, date_of_relieving, price_per_day, advance_amount, is_active, approved_by, created_on, updated_on`

const insertMemberQuery = `INSERT INTO members (pg_id, room_id, name, phone, email, password_hash, photo_key, document_key, date_of_joining, rent_type, date_of_relieving, price_per_day, advance_amount, is_active, approved_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`

const deactivateMemberQuery = `UPDATE members SET is_active = FALSE, date_of_relieving = $1, updated_on = $2 WHERE id = $3`

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	return r.db.QueryRowContext(ctx, insertMemberQuery,
		m.PGID, m.RoomID, m.Name, m.Phone, m.Email, m.PasswordHash, m.PhotoKey, m.DocumentKey,
		m.DateOfJoining, m.RentType, m.DateOfRelieving, m.PricePerDay, m.AdvanceAmount,
		m.IsActive, m.ApprovedBy, time.Now(), time.Now()).Scan(&m.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	err := scanMember(r.db.QueryRowContext(ctx, query, id), m)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) GetByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT ` + memberColumns + ` FROM members WHERE phone = $1`
	err := scanMember(r.db.QueryRowContext(ctx, query, phone), m)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET room_id=$1, name=$2, phone=$3, email=$4, password_hash=$5, photo_key=$6, document_key=$7, rent_type=$8, date_of_relieving=$9, price_per_day=$10, advance_amount=$11, is_active=$12, updated_on=$13 WHERE id=$14`
	_, err := r.db.ExecContext(ctx, query,
		m.RoomID, m.Name, m.Phone, m.Email, m.PasswordHash, m.PhotoKey, m.DocumentKey,
		m.RentType, m.DateOfRelieving, m.PricePerDay, m.AdvanceAmount, m.IsActive, time.Now(), m.ID)
	return err
}

func (r *memberRepository) Deactivate(ctx context.Context, id int32, relievingDate time.Time) error {
	_, err := r.db.ExecContext(ctx, deactivateMemberQuery, relievingDate, time.Now(), id)
	return err
}

func (r *memberRepository) ListByPGType(ctx context.Context, pgType domain.PGType, activeOnly bool) ([]domain.Member, error) {
	query := `SELECT m.id, m.pg_id, m.room_id, m.name, m.phone, m.email, m.password_hash, m.photo_key, m.document_key, m.date_of_joining, m.rent_type, m.date_of_relieving, m.price_per_day, m.advance_amount, m.is_active, m.approved_by, m.created_on, m.updated_on
	          FROM members m JOIN pgs p ON m.pg_id = p.id WHERE p.pg_type = $1`
	args := []interface{}{pgType}
	if activeOnly {
		query += " AND m.is_active = TRUE"
	}
	query += " ORDER BY m.name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func (r *memberRepository) ListByRentType(ctx context.Context, pgType domain.PGType, rentType domain.RentType) ([]domain.Member, error) {
	query := `SELECT m.id, m.pg_id, m.room_id, m.name, m.phone, m.email, m.password_hash, m.photo_key, m.document_key, m.date_of_joining, m.rent_type, m.date_of_relieving, m.price_per_day, m.advance_amount, m.is_active, m.approved_by, m.created_on, m.updated_on
	          FROM members m JOIN pgs p ON m.pg_id = p.id
	          WHERE p.pg_type = $1 AND m.rent_type = $2 AND m.is_active = TRUE ORDER BY m.name`
	rows, err := r.db.QueryContext(ctx, query, pgType, rentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func (r *memberRepository) CountByPGType(ctx context.Context, pgType domain.PGType) (int32, int32, error) {
	query := `SELECT count(*), count(*) FILTER (WHERE m.is_active) FROM members m JOIN pgs p ON m.pg_id = p.id WHERE p.pg_type = $1`
	var total, active int32
	err := r.db.QueryRowContext(ctx, query, pgType).Scan(&total, &active)
	if err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *memberRepository) CountJoinsInMonth(ctx context.Context, pgType domain.PGType, month, year int) (int32, error) {
	query := `SELECT count(*) FROM members m JOIN pgs p ON m.pg_id = p.id
	          WHERE p.pg_type = $1 AND EXTRACT(MONTH FROM m.date_of_joining) = $2 AND EXTRACT(YEAR FROM m.date_of_joining) = $3`
	var count int32
	err := r.db.QueryRowContext(ctx, query, pgType, month, year).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *memberRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM members WHERE is_active = FALSE AND date_of_relieving < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner, m *domain.Member) error {
	return row.Scan(&m.ID, &m.PGID, &m.RoomID, &m.Name, &m.Phone, &m.Email, &m.PasswordHash,
		&m.PhotoKey, &m.DocumentKey, &m.DateOfJoining, &m.RentType, &m.DateOfRelieving,
		&m.PricePerDay, &m.AdvanceAmount, &m.IsActive, &m.ApprovedBy, &m.CreatedOn, &m.UpdatedOn)
}

func scanMembers(rows *sql.Rows) ([]domain.Member, error) {
	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := scanMember(rows, &m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
