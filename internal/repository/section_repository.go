package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/model"
)

// SectionRepository defines section persistence operations.
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	FindByID(ctx context.Context, id uint) (*model.Section, error)
	FindByIDWithCards(ctx context.Context, id uint) (*model.Section, error)
	ListByPage(ctx context.Context, pageID uint) ([]model.Section, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository creates a new section repository.
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

// Create creates a new section.
func (r *sectionRepository) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

// FindByID finds a bare section by ID, for ownership resolution.
func (r *sectionRepository) FindByID(ctx context.Context, id uint) (*model.Section, error) {
	var section model.Section
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// FindByIDWithCards loads a section with its ordered cards.
func (r *sectionRepository) FindByIDWithCards(ctx context.Context, id uint) (*model.Section, error) {
	var section model.Section
	if err := r.db.WithContext(ctx).
		Preload("Cards", subtreeOrder).
		Where("id = ?", id).First(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// ListByPage returns a page's sections with their cards, ordered.
func (r *sectionRepository) ListByPage(ctx context.Context, pageID uint) ([]model.Section, error) {
	var sections []model.Section
	if err := r.db.WithContext(ctx).
		Preload("Cards", subtreeOrder).
		Where("page_id = ?", pageID).
		Order("`order` ASC, id ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// Update applies the given column values to a section.
func (r *sectionRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Section{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes a section. Its cards cascade away.
func (r *sectionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Section{}, id).Error
}
