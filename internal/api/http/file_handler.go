package http

import (
	"io"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strconv"

	"pgnest-backend/internal/storage"

	"github.com/gorilla/mux"
)

// FileHandler serves stored uploads (profile photos, documents, payment
// screenshots, settlement proofs) to authenticated callers.
type FileHandler struct {
	store storage.Storage
}

func NewFileHandler(store storage.Storage) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := path.Join(vars["category"], vars["file"])

	exists, size, err := h.store.Exists(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file key")
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	file, err := h.store.Open(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open file")
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, file)
}
