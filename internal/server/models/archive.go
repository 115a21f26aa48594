package models

import (
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// Upload states of a report archive.
const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
)

// ReportArchive tracks a shift report stored in object storage.
type ReportArchive struct {
	ID           string
	Date         shiftclock.Date
	Shift        shiftclock.Shift
	StorageKey   string
	UploadStatus string
	CreatedAt    time.Time
	// URL is a presigned download link, set only when listing.
	URL string
}

// ArchiveUploadTask tells the client where to PUT the document.
type ArchiveUploadTask struct {
	ArchiveID string
	URL       string
}
