package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a source file uploaded for a donor. The content lives in the
// blob store under ObjectKey.
type Document struct {
	ID          uuid.UUID
	DonorID     uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	ObjectKey   string
	PageCount   int
	CreatedAt   time.Time
}

// DocumentCount is the number of documents stored for one donor.
type DocumentCount struct {
	DonorID uuid.UUID
	Count   int
}

// Citation points at a page of a source document.
type Citation struct {
	DocumentID uuid.UUID `json:"document_id"`
	Page       int       `json:"page"`
}

// Finding is an analysis result attached to a donor.
type Finding struct {
	ID        uuid.UUID
	DonorID   uuid.UUID
	Category  string
	Summary   string
	Severity  Severity
	Citations []Citation
	CreatedAt time.Time
}

// IsCritical reports whether the finding warrants the critical badge.
func (f *Finding) IsCritical() bool {
	return f.Severity == SeverityCritical
}

// ShowCriticalBadge decides whether a donor displays the critical-finding
// badge. A donor without documents never shows it, whatever the findings say.
func ShowCriticalBadge(documentCount int, findings []Finding) bool {
	if documentCount <= 0 {
		return false
	}
	for i := range findings {
		if findings[i].IsCritical() {
			return true
		}
	}
	return false
}
