package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/authz"
	"github.com/amohooo/cv-app/internal/errors"
	"github.com/amohooo/cv-app/internal/model"
	"github.com/amohooo/cv-app/internal/repository"
)

// CreateSectionInput carries the fields for a new section.
type CreateSectionInput struct {
	Title       string
	Description string
	Order       int
	PageID      uint
}

// UpdateSectionInput carries a partial section update.
type UpdateSectionInput struct {
	Title       *string
	Description *string
	Order       *int
}

// SectionService handles section operations. A section's effective owner is
// its page's owner, resolved at request time; every mutation returns the
// mutated section together with the re-assembled page.
type SectionService interface {
	ListByPage(ctx context.Context, pageID uint) ([]model.Section, error)
	Create(ctx context.Context, caller *model.Admin, input CreateSectionInput) (*model.Section, *model.Page, error)
	Update(ctx context.Context, caller *model.Admin, id uint, input UpdateSectionInput) (*model.Section, *model.Page, error)
	Delete(ctx context.Context, caller *model.Admin, id uint) (*model.Page, error)
}

type sectionService struct {
	sections  repository.SectionRepository
	pages     repository.PageRepository
	assembler *PageAssembler
}

// NewSectionService creates a new section service.
func NewSectionService(sections repository.SectionRepository, pages repository.PageRepository, assembler *PageAssembler) SectionService {
	return &sectionService{sections: sections, pages: pages, assembler: assembler}
}

// ListByPage returns a page's sections with their cards, ordered.
func (s *sectionService) ListByPage(ctx context.Context, pageID uint) ([]model.Section, error) {
	return s.sections.ListByPage(ctx, pageID)
}

// Create stores a new section under a page the caller may mutate.
func (s *sectionService) Create(ctx context.Context, caller *model.Admin, input CreateSectionInput) (*model.Section, *model.Page, error) {
	page, err := s.resolvePage(ctx, input.PageID)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanMutate(caller, page.AdminID) {
		return nil, nil, errors.ErrForbidden
	}

	section := &model.Section{
		Title:       input.Title,
		Description: sanitizeHTML(input.Description),
		Order:       input.Order,
		PageID:      page.ID,
	}
	if err := s.sections.Create(ctx, section); err != nil {
		return nil, nil, fmt.Errorf("create section: %w", err)
	}

	return s.reassemble(ctx, section.ID, page)
}

// Update mutates a section. Ownership is walked up to the page first; the
// section resolves before the page so missing resources read as 404.
func (s *sectionService) Update(ctx context.Context, caller *model.Admin, id uint, input UpdateSectionInput) (*model.Section, *model.Page, error) {
	section, page, err := s.resolve(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanMutate(caller, page.AdminID) {
		return nil, nil, errors.ErrForbidden
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = sanitizeHTML(*input.Description)
	}
	if input.Order != nil {
		fields["order"] = *input.Order
	}
	if len(fields) > 0 {
		if err := s.sections.Update(ctx, section.ID, fields); err != nil {
			return nil, nil, fmt.Errorf("update section: %w", err)
		}
	}

	return s.reassemble(ctx, section.ID, page)
}

// Delete removes a section and its cards, returning the re-assembled page.
func (s *sectionService) Delete(ctx context.Context, caller *model.Admin, id uint) (*model.Page, error) {
	section, page, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(caller, page.AdminID) {
		return nil, errors.ErrForbidden
	}

	if err := s.sections.Delete(ctx, section.ID); err != nil {
		return nil, fmt.Errorf("delete section: %w", err)
	}

	s.assembler.Invalidate(ctx, page)
	return s.assembler.Assemble(ctx, page.ID)
}

// resolve loads the section and walks up to its owning page.
func (s *sectionService) resolve(ctx context.Context, id uint) (*model.Section, *model.Page, error) {
	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrSectionNotFound
		}
		return nil, nil, err
	}
	page, err := s.resolvePage(ctx, section.PageID)
	if err != nil {
		return nil, nil, err
	}
	return section, page, nil
}

func (s *sectionService) resolvePage(ctx context.Context, pageID uint) (*model.Page, error) {
	page, err := s.pages.FindByID(ctx, pageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

// reassemble returns the mutated section with its cards plus the fresh page
// subtree. The mutation has already committed; a failure here does not roll
// it back.
func (s *sectionService) reassemble(ctx context.Context, sectionID uint, page *model.Page) (*model.Section, *model.Page, error) {
	section, err := s.sections.FindByIDWithCards(ctx, sectionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrSectionNotFound
		}
		return nil, nil, err
	}

	s.assembler.Invalidate(ctx, page)
	assembled, err := s.assembler.Assemble(ctx, page.ID)
	if err != nil {
		return nil, nil, err
	}
	return section, assembled, nil
}
