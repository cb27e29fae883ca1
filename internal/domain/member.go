package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentType string

const (
	RentTypeLongTerm  RentType = "LONG_TERM"
	RentTypeShortTerm RentType = "SHORT_TERM"
)

type Member struct {
	ID              int32           `json:"id"`
	PGID            int32           `json:"pg_id"`
	RoomID          *int32          `json:"room_id,omitempty"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	PasswordHash    string          `json:"-"`
	PhotoKey        string          `json:"photo_key,omitempty"`
	DocumentKey     string          `json:"document_key,omitempty"`
	DateOfJoining   time.Time       `json:"date_of_joining"`
	RentType        RentType        `json:"rent_type"`
	DateOfRelieving *time.Time      `json:"date_of_relieving,omitempty"` // set for SHORT_TERM stays
	PricePerDay     decimal.Decimal `json:"price_per_day"`
	AdvanceAmount   decimal.Decimal `json:"advance_amount"`
	IsActive        bool            `json:"is_active"`
	ApprovedBy      *int32          `json:"approved_by,omitempty"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}
