package models

// Niche is an admin-curated offer category. Position reflects the display order
// set through drag-and-drop on the admin screen.
type Niche struct {
	BaseModel

	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Position int    `gorm:"index" json:"position"`
	Active   bool   `gorm:"default:true" json:"active"`
}
