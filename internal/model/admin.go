package model

import "time"

// Admin roles. Exactly one tier exists above a regular admin.
const (
	RoleMaster = "master"
	RoleAdmin  = "admin"
)

// Admin represents a dashboard account.
type Admin struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'admin'"`
	Email        *string   `json:"email,omitempty" gorm:"uniqueIndex;size:255"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Pages []Page `json:"pages,omitempty" gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE"`
}

// IsMaster reports whether the admin holds the elevated role.
func (a *Admin) IsMaster() bool {
	return a.Role == RoleMaster
}

// Summary returns the owner summary exposed on pages.
func (a *Admin) Summary() *AdminSummary {
	return &AdminSummary{ID: a.ID, Username: a.Username, Role: a.Role}
}

// AdminSummary is the owner projection embedded in page responses.
// It reads from the admins table but carries no credential columns.
type AdminSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TableName maps the summary onto the admins table.
func (AdminSummary) TableName() string {
	return "admins"
}
