package view

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"

	"github.com/pengelbrecht/investors/internal/investor"
)

// Matches reports whether inv passes both filter predicates of c.
//
// Search is a case-insensitive substring match against the name or the
// category; the category predicate is an exact, case-sensitive match.
func Matches(inv *investor.Investor, c Criteria) bool {
	return matchesSearch(inv, strings.ToLower(c.Search)) && matchesCategory(inv, c.Category)
}

func matchesSearch(inv *investor.Investor, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(inv.Name), needle) ||
		strings.Contains(strings.ToLower(string(inv.Expertise)), needle)
}

func matchesCategory(inv *investor.Investor, c investor.Category) bool {
	return c.IsAll() || inv.Expertise == c
}

// Filter returns the investors matching c in their original order. The
// result is a new slice of the same references.
func Filter(items []*investor.Investor, c Criteria) []*investor.Investor {
	out := make([]*investor.Investor, 0, len(items))
	for _, inv := range items {
		if Matches(inv, c) {
			out = append(out, inv)
		}
	}
	return out
}

// Sort orders items in place by key. The sort is stable: investors with equal
// sort values keep their relative order. col is used for name ordering and
// may be nil, in which case names compare by code point.
func Sort(items []*investor.Investor, key SortKey, col *collate.Collator) {
	slices.SortStableFunc(items, comparator(key, col))
}

func comparator(key SortKey, col *collate.Collator) func(a, b *investor.Investor) int {
	switch key {
	case SortByInvestments:
		return func(a, b *investor.Investor) int {
			return cmp.Compare(b.Investments, a.Investments)
		}
	case SortByPortfolio:
		return func(a, b *investor.Investor) int {
			return b.Portfolio.Cmp(a.Portfolio)
		}
	default:
		if col == nil {
			return func(a, b *investor.Investor) int {
				return strings.Compare(a.Name, b.Name)
			}
		}
		return func(a, b *investor.Investor) int {
			return col.CompareString(a.Name, b.Name)
		}
	}
}
