package models

// Retainer contract states.
const (
	RetainerStatusActive    = "active"
	RetainerStatusPaused    = "paused"
	RetainerStatusCompleted = "completed"
	RetainerStatusCancelled = "cancelled"
)

// RetainerContract is an ongoing monthly engagement between a company and a creator,
// independent of per-sale affiliate offers.
type RetainerContract struct {
	BaseModel

	CompanyID   string `gorm:"type:uuid;index;not null" json:"company_id"`
	CompanyName string `json:"company_name"`

	CreatorID   string `gorm:"type:uuid;index;not null" json:"creator_id"`
	CreatorName string `json:"creator_name"`

	Title  string `gorm:"type:varchar(255);not null" json:"title"`
	Status string `gorm:"type:varchar(32);default:'active';index" json:"status"`

	// MonthlyAmount is the retainer fee in cents.
	MonthlyAmount        int64 `json:"monthly_amount"`
	DeliverablesPerMonth int   `json:"deliverables_per_month"`
}
