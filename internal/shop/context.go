// Package shop assembles the item shop: daily and weekly rotations drawn from
// the catalog index, plus the pre-authored battle-pass storefront.
package shop

import (
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"

	"itemshop/internal/assets"
	"itemshop/internal/catalog"
	"itemshop/internal/domain"
)

// DefaultMaxAttempts bounds every rejection-sampling loop.
const DefaultMaxAttempts = 1000

// ErrInsufficientItems is returned, alongside the partial storefront, when a
// selector runs out of attempts or candidates before reaching its target.
var ErrInsufficientItems = errors.New("insufficient eligible items")

// Pricer prices an item; false means the item cannot be sold.
type Pricer interface {
	Price(item *domain.CosmeticItem) (int, bool)
}

// Context is everything a single generation pass reads. A new one is built for
// every pass and nothing in it is shared with other passes.
type Context struct {
	Index       *catalog.Index
	Assets      assets.Resolved
	Prices      Pricer
	Rand        *rand.Rand
	NewOfferID  func() string
	MaxAttempts int
}

func NewContext(idx *catalog.Index, resolved assets.Resolved, prices Pricer, rng *rand.Rand) *Context {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if resolved == nil {
		resolved = assets.Resolved{}
	}
	return &Context{
		Index:       idx,
		Assets:      resolved,
		Prices:      prices,
		Rand:        rng,
		NewOfferID:  uuid.NewString,
		MaxAttempts: DefaultMaxAttempts,
	}
}
