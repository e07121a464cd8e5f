package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/model"
)

// CardRepository defines card persistence operations.
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	FindByID(ctx context.Context, id uint) (*model.Card, error)
	ListBySection(ctx context.Context, sectionID uint) ([]model.Card, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// Create creates a new card.
func (r *cardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// FindByID finds a card by ID.
func (r *cardRepository) FindByID(ctx context.Context, id uint) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// ListBySection returns a section's cards, ordered.
func (r *cardRepository) ListBySection(ctx context.Context, sectionID uint) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("`order` ASC, id ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// Update applies the given column values to a card.
func (r *cardRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes a card.
func (r *cardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Card{}, id).Error
}
