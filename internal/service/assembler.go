package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/cache"
	"github.com/amohooo/cv-app/internal/errors"
	"github.com/amohooo/cv-app/internal/model"
	"github.com/amohooo/cv-app/internal/repository"
)

const pageCacheTTL = 5 * time.Minute

// PageAssembler reloads a complete page subtree (sections, cards, owner
// summary, all ordered) so that every mutation response hands the client a
// replacement for its whole local copy of the page.
//
// Re-assembly runs after the mutation has committed and is not part of the
// same transaction. If the page vanishes between the write and the re-read,
// the write stands and the re-read reports page-not-found.
type PageAssembler struct {
	pages repository.PageRepository
	cache *cache.Client
}

// NewPageAssembler creates a new page assembler.
func NewPageAssembler(pages repository.PageRepository, cache *cache.Client) *PageAssembler {
	return &PageAssembler{pages: pages, cache: cache}
}

func (a *PageAssembler) cacheKey(id uint) string {
	return fmt.Sprintf("page:%d", id)
}

func (a *PageAssembler) slugCacheKey(slug string) string {
	return "page:slug:" + slug
}

// Assemble loads the page fresh from the database, bypassing the cache.
// Every mutation path uses this so the returned tree is never older than
// the write that triggered it.
func (a *PageAssembler) Assemble(ctx context.Context, id uint) (*model.Page, error) {
	page, err := a.pages.FindByIDWithTree(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPageNotFound
		}
		return nil, err
	}
	sortPageTree(page)
	return page, nil
}

// GetByID returns an assembled page for public reads, served from cache
// when possible.
func (a *PageAssembler) GetByID(ctx context.Context, id uint) (*model.Page, error) {
	if data, _ := a.cache.Get(ctx, a.cacheKey(id)); data != nil {
		var cached model.Page
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	page, err := a.Assemble(ctx, id)
	if err != nil {
		return nil, err
	}
	a.store(ctx, page)
	return page, nil
}

// GetBySlug returns an assembled page addressed by slug.
func (a *PageAssembler) GetBySlug(ctx context.Context, slug string) (*model.Page, error) {
	if data, _ := a.cache.Get(ctx, a.slugCacheKey(slug)); data != nil {
		var cached model.Page
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	page, err := a.pages.FindBySlugWithTree(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPageNotFound
		}
		return nil, err
	}
	sortPageTree(page)
	a.store(ctx, page)
	return page, nil
}

// List returns every page with its assembled subtree. Not cached; the
// dashboard calls it rarely compared to single-page reads.
func (a *PageAssembler) List(ctx context.Context) ([]model.Page, error) {
	pages, err := a.pages.ListWithTree(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		sortPageTree(&pages[i])
	}
	return pages, nil
}

// Invalidate drops the cached copies of a page after any mutation in its
// subtree.
func (a *PageAssembler) Invalidate(ctx context.Context, page *model.Page) {
	_ = a.cache.Delete(ctx, a.cacheKey(page.ID), a.slugCacheKey(page.Slug))
}

func (a *PageAssembler) store(ctx context.Context, page *model.Page) {
	if payload, err := json.Marshal(page); err == nil {
		_ = a.cache.Set(ctx, a.cacheKey(page.ID), payload, pageCacheTTL)
		_ = a.cache.Set(ctx, a.slugCacheKey(page.Slug), payload, pageCacheTTL)
	}
}
