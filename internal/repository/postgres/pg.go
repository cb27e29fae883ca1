package postgres

import (
	"context"
	"database/sql"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"
)

type pgRepository struct {
	db *sql.DB
}

func NewPGRepository(db *sql.DB) repository.PGRepository {
	return &pgRepository{db: db}
}

func (r *pgRepository) Create(ctx context.Context, pg *domain.PG) error {
	query := `INSERT INTO pgs (name, location, pg_type, contact_phone, contact_email, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, pg.Name, pg.Location, pg.Type, pg.ContactPhone, pg.ContactEmail, time.Now(), time.Now()).Scan(&pg.ID)
}

func (r *pgRepository) GetByID(ctx context.Context, id int32) (*domain.PG, error) {
	pg := &domain.PG{}
	query := `SELECT id, name, location, pg_type, contact_phone, contact_email, created_on, updated_on FROM pgs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&pg.ID, &pg.Name, &pg.Location, &pg.Type, &pg.ContactPhone, &pg.ContactEmail, &pg.CreatedOn, &pg.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return pg, nil
}

func (r *pgRepository) Update(ctx context.Context, pg *domain.PG) error {
	query := `UPDATE pgs SET name=$1, location=$2, pg_type=$3, contact_phone=$4, contact_email=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, pg.Name, pg.Location, pg.Type, pg.ContactPhone, pg.ContactEmail, time.Now(), pg.ID)
	return err
}
