package view

import (
	"errors"
	"fmt"

	"github.com/pengelbrecht/investors/internal/investor"
)

// ErrInvalidCriteria is wrapped by every rejected criteria update.
var ErrInvalidCriteria = errors.New("invalid criteria")

// CriteriaError names the field and value that made an update invalid.
type CriteriaError struct {
	Field string
	Value string
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("invalid criteria: unknown %s %q", e.Field, e.Value)
}

func (e *CriteriaError) Unwrap() error {
	return ErrInvalidCriteria
}

// SortKey selects the ordering of the view.
type SortKey string

const (
	// SortByName orders by display name, ascending, locale-aware.
	SortByName SortKey = "name"
	// SortByInvestments orders by investment count, highest first.
	SortByInvestments SortKey = "investments"
	// SortByPortfolio orders by portfolio value, highest first.
	SortByPortfolio SortKey = "portfolio"
)

// SortKeys lists every valid sort key.
var SortKeys = []SortKey{SortByName, SortByInvestments, SortByPortfolio}

// ParseSortKey validates a sort key string.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", &CriteriaError{Field: "sort key", Value: s}
}

// ParseCategory validates a category string against the known set,
// including the "all" sentinel.
func ParseCategory(s string) (investor.Category, error) {
	c, ok := investor.ParseCategory(s)
	if !ok {
		return "", &CriteriaError{Field: "category", Value: s}
	}
	return c, nil
}

// Criteria is the full set of selections controlling the view. It is a
// value type; the three fields are independent.
type Criteria struct {
	Search   string
	Category investor.Category
	Sort     SortKey
}

// DefaultCriteria matches everything and sorts by name.
func DefaultCriteria() Criteria {
	return Criteria{
		Category: investor.CategoryAll,
		Sort:     SortByName,
	}
}

// Validate checks the category and sort key.
func (c Criteria) Validate() error {
	if _, err := ParseCategory(string(c.Category)); err != nil {
		return err
	}
	if _, err := ParseSortKey(string(c.Sort)); err != nil {
		return err
	}
	return nil
}

// Update is a partial criteria change. Nil fields keep their current value.
type Update struct {
	Search   *string
	Category *investor.Category
	Sort     *SortKey
}

// WithSearch returns u with the search text set.
func (u Update) WithSearch(s string) Update {
	u.Search = &s
	return u
}

// WithCategory returns u with the category set.
func (u Update) WithCategory(c investor.Category) Update {
	u.Category = &c
	return u
}

// WithSort returns u with the sort key set.
func (u Update) WithSort(k SortKey) Update {
	u.Sort = &k
	return u
}

// apply validates u against c and returns the merged criteria. c is never
// modified, so a failed update leaves the caller's state untouched.
func (u Update) apply(c Criteria) (Criteria, error) {
	next := c
	if u.Search != nil {
		next.Search = *u.Search
	}
	if u.Category != nil {
		cat, err := ParseCategory(string(*u.Category))
		if err != nil {
			return c, err
		}
		next.Category = cat
	}
	if u.Sort != nil {
		key, err := ParseSortKey(string(*u.Sort))
		if err != nil {
			return c, err
		}
		next.Sort = key
	}
	return next, nil
}
