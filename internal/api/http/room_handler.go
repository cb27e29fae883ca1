package http

import (
	"encoding/json"
	"net/http"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"

	"github.com/shopspring/decimal"
)

type RoomHandler struct {
	roomSvc service.RoomService
}

func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

type addRoomRequest struct {
	PGID        int32  `json:"pg_id" validate:"required"`
	RoomNo      string `json:"room_no" validate:"required,max=20"`
	Capacity    int32  `json:"capacity" validate:"required,min=1,max=20"`
	Rent        string `json:"rent" validate:"required"`
	PricePerDay string `json:"price_per_day" validate:"required"`
}

func (h *RoomHandler) Add(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	var req addRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	rent, err := decimal.NewFromString(req.Rent)
	if err != nil || rent.LessThanOrEqual(decimal.Zero) {
		writeValidationError(w, map[string]string{"rent": "must be a positive decimal number"})
		return
	}
	pricePerDay, err := decimal.NewFromString(req.PricePerDay)
	if err != nil || pricePerDay.LessThanOrEqual(decimal.Zero) {
		writeValidationError(w, map[string]string{"price_per_day": "must be a positive decimal number"})
		return
	}

	room := &domain.Room{
		PGID:        req.PGID,
		RoomNo:      req.RoomNo,
		Capacity:    req.Capacity,
		Rent:        rent,
		PricePerDay: pricePerDay,
	}
	if err := h.roomSvc.AddRoom(r.Context(), pgType, room); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	rooms, err := h.roomSvc.ListRooms(r.Context(), pgType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms})
}
