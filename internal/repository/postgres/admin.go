package postgres

import (
	"context"
	"database/sql"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"
)

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	query := `INSERT INTO admins (name, email, password_hash, pg_type, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.Name, a.Email, a.PasswordHash, a.PGType, a.Role, time.Now(), time.Now()).Scan(&a.ID)
}

func (r *adminRepository) GetByID(ctx context.Context, id int32) (*domain.Admin, error) {
	a := &domain.Admin{}
	query := `SELECT id, name, email, password_hash, pg_type, role, created_on, updated_on FROM admins WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.PGType, &a.Role, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	a := &domain.Admin{}
	query := `SELECT id, name, email, password_hash, pg_type, role, created_on, updated_on FROM admins WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.PGType, &a.Role, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *adminRepository) Update(ctx context.Context, a *domain.Admin) error {
	query := `UPDATE admins SET name=$1, email=$2, password_hash=$3, pg_type=$4, role=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, a.Name, a.Email, a.PasswordHash, a.PGType, a.Role, time.Now(), a.ID)
	return err
}
