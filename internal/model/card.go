package model

import "time"

// Card is the leaf content unit. Image and file URLs come from the upload
// mechanism and are treated as opaque strings.
type Card struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Content      string    `json:"content" gorm:"type:text"`
	ImageURL     *string   `json:"imageUrl,omitempty" gorm:"size:512"`
	FileURL      *string   `json:"fileUrl,omitempty" gorm:"size:512"`
	OriginalName *string   `json:"originalName,omitempty" gorm:"size:255"`
	Order        int       `json:"order" gorm:"column:order;default:0"`
	SectionID    uint      `json:"sectionId" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
