package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification represents an in-app notification for a user. Type is an open
// string set by the emitting subsystem; rendering maps it onto a closed set of
// display kinds.
type Notification struct {
	BaseModel

	UserID  string `gorm:"type:uuid;index;not null" json:"user_id"`
	Type    string `gorm:"type:varchar(64);not null" json:"type"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	LinkURL string `gorm:"type:text" json:"link_url,omitempty"`

	Metadata datatypes.JSON `json:"metadata"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`
}
