package model

import "time"

// Section groups cards within a page. Deleting the page cascades here.
type Section struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Order       int       `json:"order" gorm:"column:order;default:0"`
	PageID      uint      `json:"pageId" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Cards []Card `json:"Cards" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}
