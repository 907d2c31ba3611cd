package models

import "time"

// Role identifies the marketplace audience a user belongs to.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
	RoleCreator Role = "creator"
)

// Valid reports whether the role is one of the known marketplace roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleCreator:
		return true
	}
	return false
}

// User describes a marketplace account: platform admins, companies publishing
// offers, and creators promoting them.
type User struct {
	BaseModel

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	DisplayName string `json:"display_name"`
	Role        Role   `gorm:"type:varchar(16);not null;index" json:"role"`

	// CompanyName is set for company accounts only.
	CompanyName string `json:"company_name,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
