// Package view derives the presentable investor list from a borrowed
// collection and three independent criteria: search text, category and sort
// key.
//
// A Pipeline recomputes its view synchronously inside every mutator, so
// CurrentView always reflects the latest SetCollection and SetCriteria calls.
// The view is rebuilt from scratch each time, never patched.
//
//	p := view.New(view.WithLanguage(language.French))
//	p.SetCollection(investors)
//	if err := p.SetCriteria(view.Update{}.WithSort(view.SortByInvestments)); err != nil {
//	    // errors.Is(err, view.ErrInvalidCriteria); state unchanged
//	}
//	cards := p.CurrentView()
//
// A Pipeline is not safe for concurrent use; the owner serializes calls.
package view

import (
	"slices"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pengelbrecht/investors/internal/investor"
)

// Pipeline owns the criteria and a borrowed collection reference and keeps
// the derived view current.
type Pipeline struct {
	source   []*investor.Investor
	criteria Criteria
	view     []*investor.Investor

	collator *collate.Collator
	logger   *zap.Logger

	initial *Criteria
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for recompute traces.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithLanguage sets the locale used to order names.
func WithLanguage(tag language.Tag) Option {
	return func(p *Pipeline) {
		p.collator = collate.New(tag)
	}
}

// WithCriteria sets the initial criteria. Invalid criteria are ignored and
// the defaults kept.
func WithCriteria(c Criteria) Option {
	return func(p *Pipeline) {
		p.initial = &c
	}
}

// New creates a Pipeline with default criteria and an empty collection.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		criteria: DefaultCriteria(),
		collator: collate.New(language.French),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if c := p.initial; c != nil {
		if err := c.Validate(); err != nil {
			p.logger.Warn("ignoring initial criteria", zap.Error(err))
		} else {
			p.criteria = *c
		}
		p.initial = nil
	}
	p.recompute()
	return p
}

// SetCollection replaces the backing collection. The slice is borrowed, not
// copied: callers must pass a snapshot they will not mutate. An empty or nil
// collection yields an empty view.
func (p *Pipeline) SetCollection(items []*investor.Investor) {
	p.source = items
	p.recompute()
}

// SetCriteria applies a partial criteria update. If any field is invalid
// the update is rejected as a whole and the previous state is kept.
func (p *Pipeline) SetCriteria(u Update) error {
	next, err := u.apply(p.criteria)
	if err != nil {
		p.logger.Debug("rejected criteria update", zap.Error(err))
		return err
	}
	p.criteria = next
	p.recompute()
	return nil
}

// Criteria returns the current criteria.
func (p *Pipeline) Criteria() Criteria {
	return p.criteria
}

// CurrentView returns the filtered, sorted investors. Each call returns a
// new slice; the investors themselves are shared with the collection.
func (p *Pipeline) CurrentView() []*investor.Investor {
	return slices.Clone(p.view)
}

// Len returns the number of investors in the current view.
func (p *Pipeline) Len() int {
	return len(p.view)
}

// CollectionLen returns the size of the backing collection.
func (p *Pipeline) CollectionLen() int {
	return len(p.source)
}

func (p *Pipeline) recompute() {
	next := Filter(p.source, p.criteria)
	Sort(next, p.criteria.Sort, p.collator)
	p.view = next

	p.logger.Debug("view recomputed",
		zap.String("search", p.criteria.Search),
		zap.String("category", string(p.criteria.Category)),
		zap.String("sort", string(p.criteria.Sort)),
		zap.Int("collection", len(p.source)),
		zap.Int("visible", len(next)),
	)
}
