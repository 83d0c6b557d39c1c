// Package investor holds the investor record, its categories and the loader
// that ingests data files into immutable snapshots.
package investor

import (
	"github.com/shopspring/decimal"
)

// Category is an investor's primary category label.
type Category string

// Known categories, in display order. CategoryAll is the "all" sentinel used
// by view criteria; it never appears on an investor record.
const (
	CategoryAll       Category = "Tous"
	CategoryTechAI    Category = "Tech & IA"
	CategoryFintech   Category = "Fintech"
	CategoryEcommerce Category = "E-commerce"
	CategoryBiotech   Category = "Biotech"
	CategoryCleanTech Category = "CleanTech"
)

// Categories lists the selectable categories, sentinel first.
var Categories = []Category{
	CategoryAll,
	CategoryTechAI,
	CategoryFintech,
	CategoryEcommerce,
	CategoryBiotech,
	CategoryCleanTech,
}

// ParseCategory returns the known category matching s exactly.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// IsAll reports whether c is the "all" sentinel.
func (c Category) IsAll() bool {
	return c == CategoryAll
}

// Investor is an immutable investor record. Values are produced by the
// loader and shared by reference; nothing mutates them after ingestion.
type Investor struct {
	ID              string
	Name            string
	Expertise       Category
	Investments     int
	Portfolio       decimal.Decimal // euros
	Rating          float64
	SuccessfulExits int
	TicketSize      string
	Sectors         []string
	Location        string
	Verified        bool
	Avatar          string
}

// PortfolioLabel returns the portfolio value in the short display form
// used on cards ("2.5M€", "500K€").
func (i *Investor) PortfolioLabel() string {
	return FormatAmount(i.Portfolio)
}

// record is the on-disk shape of an investor.
type record struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Expertise       string    `json:"expertise" yaml:"expertise"`
	Investments     int       `json:"investments" yaml:"investments"`
	Portfolio       rawAmount `json:"portfolio" yaml:"portfolio"`
	Rating          float64   `json:"rating" yaml:"rating"`
	SuccessfulExits int       `json:"successful_exits" yaml:"successful_exits"`
	TicketSize      string    `json:"preferred_ticket_size" yaml:"preferred_ticket_size"`
	Sectors         []string  `json:"sectors,omitempty" yaml:"sectors,omitempty"`
	Location        string    `json:"location" yaml:"location"`
	Verified        bool      `json:"verified" yaml:"verified"`
	Avatar          string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// fileOutput wraps the object form of a data file: {"investors": [...]}.
type fileOutput struct {
	Investors []record `json:"investors" yaml:"investors"`
}
