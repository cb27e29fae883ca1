package repos

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func memberRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "pg_id", "room_id", "name", "phone", "email", "password_hash", "photo_key", "document_key", "date_of_joining", "rent_type", "date_of_relieving", "price_per_day", "advance_amount", "is_active", "approved_by", "created_on", "updated_on"})
}

func TestMemberRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		roomID := int32(3)
		member := &domain.Member{
			PGID:          1,
			RoomID:        &roomID,
			Name:          "Ravi",
			Phone:         "9876543210",
			Email:         "ravi@test.com",
			PasswordHash:  "hash",
			DateOfJoining: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			RentType:      domain.RentTypeLongTerm,
			PricePerDay:   decimal.NewFromInt(400),
			AdvanceAmount: decimal.NewFromInt(5000),
			IsActive:      true,
		}

		mock.ExpectQuery("INSERT INTO members").
			WithArgs(member.PGID, member.RoomID, member.Name, member.Phone, member.Email, member.PasswordHash,
				member.PhotoKey, member.DocumentKey, member.DateOfJoining, member.RentType, member.DateOfRelieving,
				member.PricePerDay, member.AdvanceAmount, member.IsActive, member.ApprovedBy,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		err := repo.Create(ctx, member)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), member.ID)
	})
}

func TestMemberRepository_GetByPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := memberRows().
			AddRow(5, 1, 3, "Ravi", "9876543210", "ravi@test.com", "hash", "", "",
				time.Now(), "LONG_TERM", nil, "400", "5000", true, nil, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM members WHERE phone = \\$1").
			WithArgs("9876543210").
			WillReturnRows(rows)

		member, err := repo.GetByPhone(ctx, "9876543210")
		assert.NoError(t, err)
		assert.Equal(t, int32(5), member.ID)
		assert.True(t, member.IsActive)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM members WHERE phone = \\$1").
			WithArgs("0000000000").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByPhone(ctx, "0000000000")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestMemberRepository_Deactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	relieving := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE members SET is_active = FALSE").
		WithArgs(relieving, sqlmock.AnyArg(), int32(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Deactivate(ctx, 5, relieving)
	assert.NoError(t, err)
}

func TestMemberRepository_CountByPGType(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\), count\\(\\*\\) FILTER").
		WithArgs(domain.PGTypeMens).
		WillReturnRows(sqlmock.NewRows([]string{"count", "count"}).AddRow(30, 28))

	total, active, err := repo.CountByPGType(ctx, domain.PGTypeMens)
	assert.NoError(t, err)
	assert.Equal(t, int32(30), total)
	assert.Equal(t, int32(28), active)
}

func TestMemberRepository_DeleteInactiveBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM members WHERE is_active = FALSE").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteInactiveBefore(ctx, cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
