package domain

import "time"

type PGType string

const (
	PGTypeMens     PGType = "MENS"
	PGTypeWomens   PGType = "WOMENS"
	PGTypeColiving PGType = "COLIVING"
)

type PG struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Type         PGType    `json:"type"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
