package service

import (
	"sort"

	"github.com/amohooo/cv-app/internal/model"
)

// sortPageTree re-sorts sections and cards ascending by order, ties broken
// by id. The repository already orders its preloads, but sorting again here
// keeps the contract independent of how the rows were loaded.
func sortPageTree(page *model.Page) {
	if page == nil {
		return
	}
	sort.SliceStable(page.Sections, func(i, j int) bool {
		a, b := &page.Sections[i], &page.Sections[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
	for i := range page.Sections {
		sortCards(page.Sections[i].Cards)
	}
}

func sortCards(cards []model.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Order != cards[j].Order {
			return cards[i].Order < cards[j].Order
		}
		return cards[i].ID < cards[j].ID
	})
}
