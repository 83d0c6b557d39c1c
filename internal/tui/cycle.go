package tui

import (
	"github.com/pengelbrecht/investors/internal/investor"
	"github.com/pengelbrecht/investors/internal/view"
)

// sortCycle is the rotation behind the sort key: name, investments,
// portfolio, then back to name.
var sortCycle = map[view.SortKey]view.SortKey{
	view.SortByName:        view.SortByInvestments,
	view.SortByInvestments: view.SortByPortfolio,
	view.SortByPortfolio:   view.SortByName,
}

// nextSort returns the key after k. Unknown keys restart the cycle.
func nextSort(k view.SortKey) view.SortKey {
	if next, ok := sortCycle[k]; ok {
		return next
	}
	return view.SortByName
}

func sortLabel(k view.SortKey) string {
	switch k {
	case view.SortByInvestments:
		return "investissements"
	case view.SortByPortfolio:
		return "portfolio"
	default:
		return "nom"
	}
}

// cycleCategory returns the category delta steps away from current in
// categories, wrapping around.
func cycleCategory(categories []investor.Category, current investor.Category, delta int) investor.Category {
	if len(categories) == 0 {
		return investor.CategoryAll
	}
	idx := 0
	for i, c := range categories {
		if c == current {
			idx = i
			break
		}
	}
	n := len(categories)
	return categories[((idx+delta)%n+n)%n]
}
