package models

import "time"

// Review is a creator's rating of a company they have worked with.
// Companies may post a single public response; admins may hide abusive reviews.
type Review struct {
	BaseModel

	OfferID   *string `gorm:"type:uuid;index" json:"offer_id,omitempty"`
	CompanyID string  `gorm:"type:uuid;index;not null" json:"company_id"`
	// CompanyName is denormalised for list rendering and derived filter options.
	CompanyName string `json:"company_name"`

	CreatorID   string `gorm:"type:uuid;index;not null" json:"creator_id"`
	CreatorName string `json:"creator_name"`

	Rating int    `gorm:"not null" json:"rating"`
	Body   string `gorm:"type:text" json:"body"`

	Response   string     `gorm:"type:text" json:"response,omitempty"`
	ResponseAt *time.Time `json:"response_at,omitempty"`

	Hidden bool `gorm:"default:false;index" json:"hidden"`
}
