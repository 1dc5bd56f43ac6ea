package domain

import (
	"time"

	"paperbase/internal/fault"
)

// Document is a file owned by a company. The identity core only tracks the
// reference returned by the blob store; rendering and search live elsewhere.
// A company with at least one document cannot be deleted.
type Document struct {
	ID          string
	CompanyID   string
	Name        string
	ContentType string
	StoragePath string
	Size        int64
	CreatedAt   time.Time
}

// Validate validates the document for persistence.
func (d *Document) Validate() error {
	if d.CompanyID == "" {
		return fault.Validation("companyId", "is required")
	}
	if d.Name == "" {
		return fault.Validation("name", "is required")
	}
	if d.StoragePath == "" {
		return fault.Validation("storagePath", "is required")
	}
	return nil
}
