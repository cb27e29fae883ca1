package domain

import "time"

type AdminRole string

const (
	AdminRoleOwner   AdminRole = "OWNER"
	AdminRoleManager AdminRole = "MANAGER"
)

type Admin struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PGType       PGType    `json:"pg_type"` // scope: which property type this admin manages
	Role         AdminRole `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
