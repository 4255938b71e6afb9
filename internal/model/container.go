package model

import (
	"time"

	"gorm.io/datatypes"
)

// Container is a named node of the two-level collection tree. Access is
// granted per container through AuthorizedUsers; sub-containers are reached
// through their parent and carry their own (usually empty) list.
type Container struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	// Unique across the whole tree, regardless of nesting level.
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// nil for top-level containers.
	ParentID *string `gorm:"type:uuid;index" json:"parent"`

	// Normalized (trimmed, lower-cased) email allow-list.
	AuthorizedUsers datatypes.JSONSlice[string] `json:"authorizedUsers"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
