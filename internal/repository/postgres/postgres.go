package postgres

import (
	"database/sql"

	"pgnest-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AdminRepository
	repository.PGRepository
	repository.RoomRepository
	repository.MemberRepository
	repository.RegisteredMemberRepository
	repository.PaymentRepository
	repository.LeavingRequestRepository
	repository.ExpenseRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                         db,
		AdminRepository:            NewAdminRepository(db),
		PGRepository:               NewPGRepository(db),
		RoomRepository:             NewRoomRepository(db),
		MemberRepository:           NewMemberRepository(db),
		RegisteredMemberRepository: NewRegisteredMemberRepository(db),
		PaymentRepository:          NewPaymentRepository(db),
		LeavingRequestRepository:   NewLeavingRequestRepository(db),
		ExpenseRepository:          NewExpenseRepository(db),
		StatsRepository:            NewStatsRepository(db),
	}
}
