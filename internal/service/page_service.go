package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/authz"
	"github.com/amohooo/cv-app/internal/errors"
	"github.com/amohooo/cv-app/internal/model"
	"github.com/amohooo/cv-app/internal/repository"
	"github.com/amohooo/cv-app/internal/slug"
)

// CreatePageInput carries the fields for a new page.
type CreatePageInput struct {
	Title       string
	Slug        string
	Description string
	Order       int
}

// UpdatePageInput carries a partial page update; nil fields are untouched.
type UpdatePageInput struct {
	Title       *string
	Slug        *string
	Description *string
	Order       *int
}

// PageService handles page operations. Reads are public; mutations require
// the caller to own the page or hold the master role.
type PageService interface {
	List(ctx context.Context) ([]model.Page, error)
	GetByID(ctx context.Context, id uint) (*model.Page, error)
	GetBySlug(ctx context.Context, slug string) (*model.Page, error)
	Create(ctx context.Context, caller *model.Admin, input CreatePageInput) (*model.Page, error)
	Update(ctx context.Context, caller *model.Admin, id uint, input UpdatePageInput) (*model.Page, error)
	Delete(ctx context.Context, caller *model.Admin, id uint) error
}

type pageService struct {
	pages     repository.PageRepository
	assembler *PageAssembler
}

// NewPageService creates a new page service.
func NewPageService(pages repository.PageRepository, assembler *PageAssembler) PageService {
	return &pageService{pages: pages, assembler: assembler}
}

// List returns all pages with their assembled subtrees and owner summaries.
func (s *pageService) List(ctx context.Context) ([]model.Page, error) {
	return s.assembler.List(ctx)
}

// GetByID returns one assembled page.
func (s *pageService) GetByID(ctx context.Context, id uint) (*model.Page, error) {
	return s.assembler.GetByID(ctx, id)
}

// GetBySlug returns one assembled page addressed by slug.
func (s *pageService) GetBySlug(ctx context.Context, pageSlug string) (*model.Page, error) {
	return s.assembler.GetBySlug(ctx, pageSlug)
}

// Create stores a new page owned by the caller and returns it assembled.
func (s *pageService) Create(ctx context.Context, caller *model.Admin, input CreatePageInput) (*model.Page, error) {
	pageSlug := input.Slug
	if pageSlug == "" {
		pageSlug = slug.Make(input.Title)
	}
	if !slug.IsValid(pageSlug) {
		return nil, errors.ErrInvalidSlug
	}
	if err := s.ensureSlugFree(ctx, pageSlug, 0); err != nil {
		return nil, err
	}

	page := &model.Page{
		Title:       input.Title,
		Slug:        pageSlug,
		Description: sanitizeHTML(input.Description),
		Order:       input.Order,
		AdminID:     caller.ID,
	}
	if err := s.pages.Create(ctx, page); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	return s.assembler.Assemble(ctx, page.ID)
}

// Update mutates a page and returns it assembled. The page is resolved
// before authorization so a missing page reads as 404, not 403.
func (s *pageService) Update(ctx context.Context, caller *model.Admin, id uint, input UpdatePageInput) (*model.Page, error) {
	page, err := s.findPage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(caller, page.AdminID) {
		return nil, errors.ErrForbidden
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Slug != nil {
		if !slug.IsValid(*input.Slug) {
			return nil, errors.ErrInvalidSlug
		}
		if err := s.ensureSlugFree(ctx, *input.Slug, page.ID); err != nil {
			return nil, err
		}
		fields["slug"] = *input.Slug
	}
	if input.Description != nil {
		fields["description"] = sanitizeHTML(*input.Description)
	}
	if input.Order != nil {
		fields["order"] = *input.Order
	}

	if len(fields) > 0 {
		if err := s.pages.Update(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update page: %w", err)
		}
	}

	s.assembler.Invalidate(ctx, page)
	return s.assembler.Assemble(ctx, id)
}

// Delete removes a page; its sections and cards cascade away with it.
func (s *pageService) Delete(ctx context.Context, caller *model.Admin, id uint) error {
	page, err := s.findPage(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanMutate(caller, page.AdminID) {
		return errors.ErrForbidden
	}

	if err := s.pages.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	s.assembler.Invalidate(ctx, page)
	return nil
}

func (s *pageService) findPage(ctx context.Context, id uint) (*model.Page, error) {
	page, err := s.pages.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

// ensureSlugFree reports ErrSlugTaken when another page already uses the
// slug. selfID excludes the page being updated.
func (s *pageService) ensureSlugFree(ctx context.Context, pageSlug string, selfID uint) error {
	existing, err := s.pages.FindBySlug(ctx, pageSlug)
	if err == nil && existing != nil && existing.ID != selfID {
		return errors.ErrSlugTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check slug: %w", err)
	}
	return nil
}
