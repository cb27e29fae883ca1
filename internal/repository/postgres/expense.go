package postgres

import (
	"context"
	"database/sql"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, pg_id, category, description, amount, paid_to, paid_on, payment_method, recorded_by, created_on, updated_on`

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (pg_id, category, description, amount, paid_to, paid_on, payment_method, recorded_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.PGID, e.Category, e.Description, e.Amount, e.PaidTo,
		e.PaidOn, e.PaymentMethod, e.RecordedBy, time.Now(), time.Now()).Scan(&e.ID)
}

func (r *expenseRepository) GetByID(ctx context.Context, id int32) (*domain.Expense, error) {
	e := &domain.Expense{}
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.PGID, &e.Category, &e.Description,
		&e.Amount, &e.PaidTo, &e.PaidOn, &e.PaymentMethod, &e.RecordedBy, &e.CreatedOn, &e.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	return err
}

func (r *expenseRepository) ListByMonth(ctx context.Context, pgType domain.PGType, month, year int) ([]domain.Expense, error) {
	query := `SELECT e.id, e.pg_id, e.category, e.description, e.amount, e.paid_to, e.paid_on, e.payment_method, e.recorded_by, e.created_on, e.updated_on
	          FROM expenses e JOIN pgs p ON e.pg_id = p.id
	          WHERE p.pg_type = $1 AND EXTRACT(MONTH FROM e.paid_on) = $2 AND EXTRACT(YEAR FROM e.paid_on) = $3
	          ORDER BY e.paid_on`
	rows, err := r.db.QueryContext(ctx, query, pgType, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.PGID, &e.Category, &e.Description, &e.Amount, &e.PaidTo,
			&e.PaidOn, &e.PaymentMethod, &e.RecordedBy, &e.CreatedOn, &e.UpdatedOn); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepository) SumByMonth(ctx context.Context, pgType domain.PGType, month, year int) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(e.amount), 0) FROM expenses e JOIN pgs p ON e.pg_id = p.id
	          WHERE p.pg_type = $1 AND EXTRACT(MONTH FROM e.paid_on) = $2 AND EXTRACT(YEAR FROM e.paid_on) = $3`
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, pgType, month, year).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *expenseRepository) CategoryTotals(ctx context.Context, pgType domain.PGType, month, year int) (map[string]decimal.Decimal, error) {
	query := `SELECT e.category, COALESCE(SUM(e.amount), 0) FROM expenses e JOIN pgs p ON e.pg_id = p.id
	          WHERE p.pg_type = $1 AND EXTRACT(MONTH FROM e.paid_on) = $2 AND EXTRACT(YEAR FROM e.paid_on) = $3
	          GROUP BY e.category`
	rows, err := r.db.QueryContext(ctx, query, pgType, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		totals[category] = total
	}
	return totals, rows.Err()
}
