package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/model"
)

// subtreeOrder sorts sections within a page and cards within a section.
// Ties on order resolve to creation order so the result is deterministic.
func subtreeOrder(db *gorm.DB) *gorm.DB {
	return db.Order("`order` ASC, id ASC")
}

// PageRepository defines page persistence operations, including the
// full-subtree reads used by tree re-assembly.
type PageRepository interface {
	Create(ctx context.Context, page *model.Page) error
	FindByID(ctx context.Context, id uint) (*model.Page, error)
	FindBySlug(ctx context.Context, slug string) (*model.Page, error)
	FindByIDWithTree(ctx context.Context, id uint) (*model.Page, error)
	FindBySlugWithTree(ctx context.Context, slug string) (*model.Page, error)
	ListWithTree(ctx context.Context) ([]model.Page, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new page repository.
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

// withTree preloads the ordered subtree and the owner summary.
func (r *pageRepository) withTree(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Sections", subtreeOrder).
		Preload("Sections.Cards", subtreeOrder).
		Preload("Admin")
}

// Create creates a new page.
func (r *pageRepository) Create(ctx context.Context, page *model.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

// FindByID finds a bare page by ID, without its subtree. Used for
// existence and ownership checks before mutating.
func (r *pageRepository) FindByID(ctx context.Context, id uint) (*model.Page, error) {
	var page model.Page
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// FindBySlug finds a bare page by slug. Used for uniqueness checks.
func (r *pageRepository) FindBySlug(ctx context.Context, slug string) (*model.Page, error) {
	var page model.Page
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// FindByIDWithTree loads a page with its ordered sections, cards and owner.
func (r *pageRepository) FindByIDWithTree(ctx context.Context, id uint) (*model.Page, error) {
	var page model.Page
	if err := r.withTree(ctx).Where("pages.id = ?", id).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// FindBySlugWithTree loads a page by slug with its ordered subtree.
func (r *pageRepository) FindBySlugWithTree(ctx context.Context, slug string) (*model.Page, error) {
	var page model.Page
	if err := r.withTree(ctx).Where("pages.slug = ?", slug).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// ListWithTree loads every page with its ordered subtree and owner summary.
func (r *pageRepository) ListWithTree(ctx context.Context) ([]model.Page, error) {
	var pages []model.Page
	if err := r.withTree(ctx).Order("`order` ASC, id ASC").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Update applies the given column values to a page.
func (r *pageRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Page{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes a page. Sections and cards underneath it cascade away via
// the foreign key constraints.
func (r *pageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Page{}, id).Error
}
