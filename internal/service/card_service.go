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

// CreateCardInput carries the fields for a new card. Image and file URLs
// come from the upload endpoint and are stored as opaque strings.
type CreateCardInput struct {
	Title        string
	Content      string
	ImageURL     *string
	FileURL      *string
	OriginalName *string
	Order        int
	SectionID    uint
}

// UpdateCardInput carries a partial card update.
type UpdateCardInput struct {
	Title        *string
	Content      *string
	ImageURL     *string
	FileURL      *string
	OriginalName *string
	Order        *int
}

// CardService handles card operations. A card's effective owner is found by
// walking up through its section to the page at request time, so an ownership transfer on
// the page takes effect immediately for every card under it.
type CardService interface {
	ListBySection(ctx context.Context, sectionID uint) ([]model.Card, error)
	Create(ctx context.Context, caller *model.Admin, input CreateCardInput) (*model.Card, *model.Page, error)
	Update(ctx context.Context, caller *model.Admin, id uint, input UpdateCardInput) (*model.Card, *model.Page, error)
	Delete(ctx context.Context, caller *model.Admin, id uint) (*model.Page, error)
}

type cardService struct {
	cards     repository.CardRepository
	sections  repository.SectionRepository
	pages     repository.PageRepository
	assembler *PageAssembler
}

// NewCardService creates a new card service.
func NewCardService(cards repository.CardRepository, sections repository.SectionRepository, pages repository.PageRepository, assembler *PageAssembler) CardService {
	return &cardService{cards: cards, sections: sections, pages: pages, assembler: assembler}
}

// ListBySection returns a section's cards, ordered.
func (s *cardService) ListBySection(ctx context.Context, sectionID uint) ([]model.Card, error) {
	return s.cards.ListBySection(ctx, sectionID)
}

// Create stores a new card under a section whose page the caller may mutate.
func (s *cardService) Create(ctx context.Context, caller *model.Admin, input CreateCardInput) (*model.Card, *model.Page, error) {
	section, page, err := s.resolveSection(ctx, input.SectionID)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanMutate(caller, page.AdminID) {
		return nil, nil, errors.ErrForbidden
	}

	card := &model.Card{
		Title:        input.Title,
		Content:      sanitizeHTML(input.Content),
		ImageURL:     input.ImageURL,
		FileURL:      input.FileURL,
		OriginalName: input.OriginalName,
		Order:        input.Order,
		SectionID:    section.ID,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, nil, fmt.Errorf("create card: %w", err)
	}

	return s.reassemble(ctx, card.ID, page)
}

// Update mutates a card. The ownership chain resolves leaf-first so each
// missing ancestor reads as its own 404 before any authorization check.
func (s *cardService) Update(ctx context.Context, caller *model.Admin, id uint, input UpdateCardInput) (*model.Card, *model.Page, error) {
	card, page, err := s.resolve(ctx, id)
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
	if input.Content != nil {
		fields["content"] = sanitizeHTML(*input.Content)
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if input.FileURL != nil {
		fields["file_url"] = *input.FileURL
	}
	if input.OriginalName != nil {
		fields["original_name"] = *input.OriginalName
	}
	if input.Order != nil {
		fields["order"] = *input.Order
	}
	if len(fields) > 0 {
		if err := s.cards.Update(ctx, card.ID, fields); err != nil {
			return nil, nil, fmt.Errorf("update card: %w", err)
		}
	}

	return s.reassemble(ctx, card.ID, page)
}

// Delete removes a card, returning the re-assembled page without it.
func (s *cardService) Delete(ctx context.Context, caller *model.Admin, id uint) (*model.Page, error) {
	card, page, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(caller, page.AdminID) {
		return nil, errors.ErrForbidden
	}

	if err := s.cards.Delete(ctx, card.ID); err != nil {
		return nil, fmt.Errorf("delete card: %w", err)
	}

	s.assembler.Invalidate(ctx, page)
	return s.assembler.Assemble(ctx, page.ID)
}

// resolve loads the card and walks up through its section to the page.
func (s *cardService) resolve(ctx context.Context, id uint) (*model.Card, *model.Page, error) {
	card, err := s.cards.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrCardNotFound
		}
		return nil, nil, err
	}
	_, page, err := s.resolveSection(ctx, card.SectionID)
	if err != nil {
		return nil, nil, err
	}
	return card, page, nil
}

func (s *cardService) resolveSection(ctx context.Context, sectionID uint) (*model.Section, *model.Page, error) {
	section, err := s.sections.FindByID(ctx, sectionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrSectionNotFound
		}
		return nil, nil, err
	}
	page, err := s.pages.FindByID(ctx, section.PageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrPageNotFound
		}
		return nil, nil, err
	}
	return section, page, nil
}

// reassemble returns the mutated card plus the fresh page subtree. The
// mutation has already committed; a failure here does not roll it back.
func (s *cardService) reassemble(ctx context.Context, cardID uint, page *model.Page) (*model.Card, *model.Page, error) {
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrCardNotFound
		}
		return nil, nil, err
	}

	s.assembler.Invalidate(ctx, page)
	assembled, err := s.assembler.Assemble(ctx, page.ID)
	if err != nil {
		return nil, nil, err
	}
	return card, assembled, nil
}
