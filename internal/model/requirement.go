package model

const (
	RequirementTypeFile = "file"
	RequirementTypeURL  = "url"
)

// Requirement is a named obligation scoped to a container by the container's
// name, not its id. The link is a weak back-reference: nothing in storage
// enforces it, and containers are never renamed, so it holds by construction.
type Requirement struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"default:''" json:"description"`
	Type        string `gorm:"not null;default:'file'" json:"type"`
	Container   string `gorm:"not null;index" json:"container"`
}
