package http

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"
	"pgnest-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type RegistrationHandler struct {
	regSvc      service.RegistrationService
	store       storage.Storage
	maxFileSize int64
}

func NewRegistrationHandler(regSvc service.RegistrationService, store storage.Storage, maxFileSizeMB int64) *RegistrationHandler {
	return &RegistrationHandler{
		regSvc:      regSvc,
		store:       store,
		maxFileSize: maxFileSizeMB << 20,
	}
}

type registrationForm struct {
	PGID          int32  `validate:"required"`
	RoomID        *int32 `validate:"-"`
	Name          string `validate:"required,min=2,max=100"`
	Phone         string `validate:"required,min=7,max=15"`
	Email         string `validate:"omitempty,email"`
	Password      string `validate:"required,min=8"`
	DateOfJoining string `validate:"required,datetime=2006-01-02"`
	RentType      string `validate:"required,oneof=LONG_TERM SHORT_TERM"`
	// Required for SHORT_TERM; checked after parsing.
	DateOfRelieving string `validate:"omitempty,datetime=2006-01-02"`
	AdvanceAmount   string `validate:"omitempty"`
}

// Register handles the public multipart registration form: identity
// fields plus an optional profile photo and ID document.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	form := registrationForm{
		Name:            r.FormValue("name"),
		Phone:           r.FormValue("phone"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		DateOfJoining:   r.FormValue("date_of_joining"),
		RentType:        r.FormValue("rent_type"),
		DateOfRelieving: r.FormValue("date_of_relieving"),
		AdvanceAmount:   r.FormValue("advance_amount"),
	}
	if pgID, err := strconv.Atoi(r.FormValue("pg_id")); err == nil {
		form.PGID = int32(pgID)
	}
	if roomVal := r.FormValue("room_id"); roomVal != "" {
		if roomID, err := strconv.Atoi(roomVal); err == nil {
			id := int32(roomID)
			form.RoomID = &id
		}
	}

	if fields := validateStruct(form); fields != nil {
		writeValidationError(w, fields)
		return
	}
	if form.RentType == string(domain.RentTypeShortTerm) && form.DateOfRelieving == "" {
		writeValidationError(w, map[string]string{"date_of_relieving": "required for SHORT_TERM registrations"})
		return
	}

	joining, _ := time.Parse("2006-01-02", form.DateOfJoining)
	reg := &domain.RegisteredMember{
		PGID:          form.PGID,
		RoomID:        form.RoomID,
		Name:          form.Name,
		Phone:         form.Phone,
		Email:         form.Email,
		DateOfJoining: joining,
		RentType:      domain.RentType(form.RentType),
	}
	if form.DateOfRelieving != "" {
		relieving, _ := time.Parse("2006-01-02", form.DateOfRelieving)
		reg.DateOfRelieving = &relieving
	}
	if form.AdvanceAmount != "" {
		advance, err := decimal.NewFromString(form.AdvanceAmount)
		if err != nil {
			writeValidationError(w, map[string]string{"advance_amount": "must be a decimal number"})
			return
		}
		reg.AdvanceAmount = advance
	}

	photoKey, err := h.saveOptionalFile(r, "photo", storage.CategoryProfiles)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reg.PhotoKey = photoKey

	documentKey, err := h.saveOptionalFile(r, "document", storage.CategoryDocuments)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reg.DocumentKey = documentKey

	if err := h.regSvc.Register(r.Context(), reg, form.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

func (h *RegistrationHandler) saveOptionalFile(r *http.Request, field, category string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	return h.store.Save(r.Context(), category, header.Filename, file)
}

func (h *RegistrationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	_, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	regs, err := h.regSvc.ListPending(r.Context(), pgType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"registrations": regs})
}

type approveRegistrationRequest struct {
	RoomID *int32 `json:"room_id"`
}

func (h *RegistrationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	adminID, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration id")
		return
	}

	var req approveRegistrationRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // body is optional
	}

	member, err := h.regSvc.Approve(r.Context(), adminID, pgType, id, req.RoomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

func (h *RegistrationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, pgType, ok := adminScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration id")
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	if err := h.regSvc.Reject(r.Context(), adminID, pgType, id, req.Reason); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// pathID parses an int32 path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
