package http

import (
	"encoding/json"
	"net/http"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"

	"github.com/gorilla/mux"
)

type MemberHandler struct {
	memberSvc service.MemberService
}

func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	members, err := h.memberSvc.ListMembers(r.Context(), pgType, activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

func (h *MemberHandler) ListByRentType(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	rentType := domain.RentType(mux.Vars(r)["type"])
	if rentType != domain.RentTypeLongTerm && rentType != domain.RentTypeShortTerm {
		writeError(w, http.StatusBadRequest, "rent type must be LONG_TERM or SHORT_TERM")
		return
	}

	members, err := h.memberSvc.ListMembersByRentType(r.Context(), pgType, rentType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberSvc.GetMember(r.Context(), pgType, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

type updateMemberRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone  *string `json:"phone" validate:"omitempty,min=7,max=15"`
	Email  *string `json:"email" validate:"omitempty,email"`
	RoomID *int32  `json:"room_id"`
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req updateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	member, err := h.memberSvc.UpdateMember(r.Context(), pgType, id, service.MemberUpdate{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		RoomID: req.RoomID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.memberSvc.DeactivateMember(r.Context(), pgType, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

type profileResponse struct {
	Member *domain.Member `json:"member"`
	Room   *domain.Room   `json:"room,omitempty"`
}

func (h *MemberHandler) Profile(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	member, room, err := h.memberSvc.GetProfile(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Member: member, Room: room})
}
