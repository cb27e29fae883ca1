package storage

import (
	"context"
	"io"
)

// Upload categories. Keys are "<category>/<generated name>".
const (
	CategoryProfiles  = "profiles"
	CategoryDocuments = "documents"
	CategoryPayments  = "payments"
	CategoryProofs    = "proofs"
)

// Storage is the interface for uploaded-file backends. The local-disk
// implementation is the only one wired today; the interface keeps the
// handlers independent of where files land.
type Storage interface {
	// Save writes the file and returns its storage key.
	Save(ctx context.Context, category, filename string, reader io.Reader) (string, error)

	// Open opens a stored file for reading.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks if a file exists and returns its size.
	Exists(ctx context.Context, key string) (bool, int64, error)

	// Delete removes a file from storage.
	Delete(ctx context.Context, key string) error
}
