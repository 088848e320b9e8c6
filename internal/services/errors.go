package services

import "errors"

// Service-level sentinel errors. The HTTP layer maps these onto RFC 7807
// problem responses.
var (
	// ErrNoDataset means no workbook has been uploaded yet (or the last
	// upload failed), so there is nothing to aggregate.
	ErrNoDataset = errors.New("no dataset loaded: not found")

	// ErrUnknownView means the requested analytics view name does not
	// exist.
	ErrUnknownView = errors.New("analytics view not found")
)
