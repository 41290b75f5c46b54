// Package quotes loads quote sources and hands quotes out either one at a
// time without repeats or all at once in date order.
package quotes

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/julianstephens/wiserone/internal/models"
)

// Collection owns the loaded quotes and tracks which ones SelectRandom has
// already returned. used[i] always describes quotes[i]; the quotes slice is
// never reordered after construction.
type Collection struct {
	quotes []models.Quote
	used   []bool
	rng    *rand.Rand
}

// Option configures a Collection.
type Option func(*Collection)

// WithSource sets the random source used by SelectRandom.
func WithSource(src rand.Source) Option {
	return func(c *Collection) {
		c.rng = rand.New(src)
	}
}

// New builds a Collection over a copy of qs with every quote unused.
func New(qs []models.Quote, opts ...Option) *Collection {
	c := &Collection{
		quotes: slices.Clone(qs),
		used:   make([]bool, len(qs)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Len returns the number of quotes in the collection.
func (c *Collection) Len() int {
	return len(c.quotes)
}

// Remaining returns how many quotes SelectRandom can still return.
func (c *Collection) Remaining() int {
	n := 0
	for _, u := range c.used {
		if !u {
			n++
		}
	}
	return n
}

// Quotes returns a copy of the quotes in load order.
func (c *Collection) Quotes() []models.Quote {
	return slices.Clone(c.quotes)
}

// SelectRandom returns a uniformly chosen quote that has not been returned
// before and marks it used. Used indices are rejected and redrawn.
func (c *Collection) SelectRandom() (models.Quote, error) {
	if c.Remaining() == 0 {
		return models.Quote{}, ErrNoQuotesAvailable
	}

	i := c.rng.IntN(len(c.quotes))
	for c.used[i] {
		i = c.rng.IntN(len(c.quotes))
	}
	c.used[i] = true

	return c.quotes[i], nil
}

// SelectAll returns every quote sorted by DateAdded as a plain string
// comparison, keeping load order for equal dates. Usage flags are ignored.
func (c *Collection) SelectAll() ([]models.Quote, error) {
	if len(c.quotes) == 0 {
		return nil, ErrNoQuotesAvailable
	}

	sorted := slices.Clone(c.quotes)
	slices.SortStableFunc(sorted, func(a, b models.Quote) int {
		return strings.Compare(a.DateAdded, b.DateAdded)
	})
	return sorted, nil
}
