package http

import (
	"context"
	"io"

	"salespulse/internal/services"
)

// DatasetServiceInterface defines what the dataset handler needs from the
// service layer. Handler tests substitute a stub implementation.
type DatasetServiceInterface interface {
	LoadFromUpload(ctx context.Context, r io.Reader, filename string) (*services.Snapshot, error)
	Current(ctx context.Context) (*services.Snapshot, error)
	View(ctx context.Context, name string) (interface{}, error)
	ViewNames() []string
}
