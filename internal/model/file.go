package model

import "time"

const (
	FileTypeFile = "file"
	FileTypeLink = "link"

	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"

	// StatusNone is the derived display status of a requirement with no
	// submission. Never persisted.
	StatusNone = "none"
)

// File is a submission (an uploaded file or a pasted link) intended to
// satisfy the Requirement with the same Name. Name equality is the only
// correlation; there is no foreign key to the requirement.
type File struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null;index" json:"name"`
	Type string `gorm:"not null" json:"type"`

	// Artifact-store locator for file submissions, the raw user URL for links.
	URL string `gorm:"not null" json:"url"`

	Status     string    `gorm:"not null;default:'pending'" json:"status"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}
