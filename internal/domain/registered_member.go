package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "PENDING"
	RegistrationStatusApproved RegistrationStatus = "APPROVED"
	RegistrationStatusRejected RegistrationStatus = "REJECTED"
)

// RegisteredMember is the staging row created by the public registration
// form. It is promoted to a Member when an admin approves it.
type RegisteredMember struct {
	ID              int32              `json:"id"`
	PGID            int32              `json:"pg_id"`
	RoomID          *int32             `json:"room_id,omitempty"`
	Name            string             `json:"name"`
	Phone           string             `json:"phone"`
	Email           string             `json:"email"`
	PasswordHash    string             `json:"-"`
	PhotoKey        string             `json:"photo_key,omitempty"`
	DocumentKey     string             `json:"document_key,omitempty"`
	DateOfJoining   time.Time          `json:"date_of_joining"`
	RentType        RentType           `json:"rent_type"`
	DateOfRelieving *time.Time         `json:"date_of_relieving,omitempty"`
	AdvanceAmount   decimal.Decimal    `json:"advance_amount"`
	Status          RegistrationStatus `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	ProcessedBy     *int32             `json:"processed_by,omitempty"`
	CreatedOn       time.Time          `json:"created_on"`
	UpdatedOn       time.Time          `json:"updated_on"`
}
