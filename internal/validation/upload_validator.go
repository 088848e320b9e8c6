// Package validation checks uploaded workbook files before the pipeline
// sees them: extension, size cap and the xlsx zip signature.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// xlsx files are zip archives; every valid upload starts with the local
// file header signature.
var zipSignature = []byte{0x50, 0x4B, 0x03, 0x04}

// allowedExtensions are the workbook formats excelize can open here.
var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// UploadValidator validates uploaded workbook files
type UploadValidator struct {
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadValidator creates an upload validator with the given size cap
func NewUploadValidator(maxBytes int64, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// ValidateFilename checks the upload's extension
func (v *UploadValidator) ValidateFilename(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("filename", filename),
			slog.String("extension", ext))
		return fmt.Errorf("unsupported file type %q: expected .xlsx or .xlsm", ext)
	}
	return nil
}

// ValidateSize checks the declared upload size against the cap. A size of
// -1 (unknown) passes; the HTTP layer still enforces the cap on the body.
func (v *UploadValidator) ValidateSize(size int64) error {
	if size > v.maxBytes {
		v.logger.Warn("rejected oversized upload",
			slog.Int64("size", size),
			slog.Int64("max_bytes", v.maxBytes))
		return fmt.Errorf("file size %d exceeds limit of %d bytes", size, v.maxBytes)
	}
	return nil
}

// ValidateContent sniffs the first bytes of the upload for the xlsx zip
// signature. Callers pass the head of the stream; four bytes suffice.
func (v *UploadValidator) ValidateContent(head []byte) error {
	if len(head) < len(zipSignature) || !bytes.Equal(head[:len(zipSignature)], zipSignature) {
		v.logger.Warn("rejected upload without xlsx signature")
		return fmt.Errorf("file content is not a valid xlsx workbook")
	}
	return nil
}
