package models

// Offer lifecycle states.
const (
	OfferStatusPending  = "pending"
	OfferStatusApproved = "approved"
	OfferStatusRejected = "rejected"
	OfferStatusArchived = "archived"
)

// Offer is a company's affiliate campaign that creators can apply to promote.
type Offer struct {
	BaseModel

	CompanyID   string `gorm:"type:uuid;index;not null" json:"company_id"`
	CompanyName string `json:"company_name"`

	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	NicheID *string `gorm:"type:uuid;index" json:"niche_id,omitempty"`
	Niche   *Niche  `json:"niche,omitempty"`

	Status string `gorm:"type:varchar(32);default:'pending';index" json:"status"`

	// PayoutPerSale is the creator commission in cents.
	PayoutPerSale int64 `json:"payout_per_sale"`

	RejectionReason string `gorm:"type:text" json:"rejection_reason,omitempty"`
}
