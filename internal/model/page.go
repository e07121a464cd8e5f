package model

import "time"

// Page is the root of a content subtree. Every page is owned by exactly
// one admin; ownership of sections and cards is derived from it.
type Page struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Order       int       `json:"order" gorm:"column:order;default:0"`
	AdminID     uint      `json:"adminId" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Sections []Section     `json:"Sections" gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
	Admin    *AdminSummary `json:"Admin,omitempty" gorm:"foreignKey:AdminID;references:ID"`
}
