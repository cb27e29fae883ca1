package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Room struct {
	ID          int32           `json:"id"`
	PGID        int32           `json:"pg_id"`
	RoomNo      string          `json:"room_no"`
	Capacity    int32           `json:"capacity"`
	Occupied    int32           `json:"occupied"`
	Rent        decimal.Decimal `json:"rent"`          // monthly rent per bed
	PricePerDay decimal.Decimal `json:"price_per_day"` // short-term rate per bed
	CreatedOn   time.Time       `json:"created_on"`
	UpdatedOn   time.Time       `json:"updated_on"`
}

// HasVacancy reports whether the room can take another member.
func (r *Room) HasVacancy() bool {
	return r.Occupied < r.Capacity
}
