package http

import (
	"encoding/json"
	"net/http"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type adminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type adminLoginResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	token, admin, err := h.authSvc.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adminLoginResponse{Token: token, Admin: admin})
}

type memberLoginRequest struct {
	Phone    string `json:"phone" validate:"required,min=7,max=15"`
	Password string `json:"password" validate:"required,min=8"`
}

type memberLoginResponse struct {
	Token  string         `json:"token"`
	Member *domain.Member `json:"member"`
}

func (h *AuthHandler) MemberLogin(w http.ResponseWriter, r *http.Request) {
	var req memberLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	token, member, err := h.authSvc.MemberLogin(r.Context(), req.Phone, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memberLoginResponse{Token: token, Member: member})
}
