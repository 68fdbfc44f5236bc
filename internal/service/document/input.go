package document

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

const (
	defaultContentType = "application/octet-stream"
	maxFileNameLen     = 255
)

// UploadInput describes a document upload. Body is read exactly once.
type UploadInput struct {
	DonorID     uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	PageCount   int
	Body        io.Reader
}

// Validate checks the upload metadata against the size limit.
func (i UploadInput) Validate(maxBytes int64) error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.FileName)
	switch {
	case name == "":
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	case len(name) > maxFileNameLen:
		errs = append(errs, domain.FieldError{Field: "file", Message: "file name too long"})
	}

	switch {
	case i.Size <= 0:
		errs = append(errs, domain.FieldError{Field: "file", Message: "must not be empty"})
	case maxBytes > 0 && i.Size > maxBytes:
		errs = append(errs, domain.FieldError{Field: "file", Message: "exceeds the upload size limit"})
	}

	if i.PageCount < 0 {
		errs = append(errs, domain.FieldError{Field: "page_count", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// cleanFileName strips any client-side directory components.
func cleanFileName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	return filepath.Base(name)
}

func contentTypeOrDefault(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return defaultContentType
	}
	return ct
}
