package models

// Promotional video states.
const (
	VideoStatusPending  = "pending"
	VideoStatusApproved = "approved"
	VideoStatusHidden   = "hidden"
)

// PromoVideo is a company-submitted promotional clip surfaced on the marketplace
// after admin approval.
type PromoVideo struct {
	BaseModel

	CompanyID   string `gorm:"type:uuid;index;not null" json:"company_id"`
	CompanyName string `json:"company_name"`

	OfferID *string `gorm:"type:uuid;index" json:"offer_id,omitempty"`

	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	VideoURL string `gorm:"type:text;not null" json:"video_url"`

	Status   string `gorm:"type:varchar(32);default:'pending';index" json:"status"`
	Featured bool   `gorm:"default:false" json:"featured"`
}
