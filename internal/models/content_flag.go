package models

import "gorm.io/datatypes"

// Content flag review states.
const (
	FlagStatusPending   = "pending"
	FlagStatusResolved  = "resolved"
	FlagStatusDismissed = "dismissed"
)

// ContentFlag records a piece of user content caught by the upstream keyword
// matcher and queued for moderator review. Keyword matching itself happens in
// the ingestion pipeline; this service only stores and routes the result.
type ContentFlag struct {
	BaseModel

	// ContentType names the flagged surface: review, offer, video, message.
	ContentType string `gorm:"type:varchar(32);not null;index" json:"content_type"`
	ContentID   string `gorm:"type:uuid;not null" json:"content_id"`

	FlaggedUserID   string `gorm:"type:uuid;index" json:"flagged_user_id"`
	FlaggedUserName string `json:"flagged_user_name"`

	Reason          string         `gorm:"type:text" json:"reason"`
	MatchedKeywords datatypes.JSON `json:"matched_keywords"`

	ReviewStatus string `gorm:"type:varchar(32);default:'pending';index" json:"review_status"`
	ActionTaken  string `gorm:"type:varchar(64)" json:"action_taken,omitempty"`
	ModeratorID  string `gorm:"type:uuid" json:"moderator_id,omitempty"`
}
