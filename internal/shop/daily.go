package shop

import (
	"fmt"

	"itemshop/internal/domain"
)

const (
	DailyStorefront   = "BRDailyStorefront"
	DailyTarget       = 6
	DailyCharacterCap = 2
)

// Categories never offered in the daily rotation.
var dailyBlocklist = map[string]bool{
	domain.TypeBackpack:  true,
	domain.TypeContrail:  true,
	domain.TypeMusicPack: true,
	domain.TypeToy:       true,
}

// SelectDaily samples the index until DailyTarget entries are built or
// DailyCharacterCap characters have been picked, whichever comes first. Each
// item is drawn at most once. On exhaustion the partial storefront is
// returned together with ErrInsufficientItems.
func (c *Context) SelectDaily() (domain.Storefront, error) {
	sf := domain.NewStorefront(DailyStorefront)
	ids := c.Index.ItemIDs()
	settled := make(map[string]bool)
	characters := 0

	for attempt := 0; len(sf.CatalogEntries) < DailyTarget && characters < DailyCharacterCap; attempt++ {
		if attempt >= c.MaxAttempts || len(settled) >= len(ids) {
			return sf, fmt.Errorf("%w: daily rotation has %d of %d entries after %d draws",
				ErrInsufficientItems, len(sf.CatalogEntries), DailyTarget, attempt)
		}

		id := ids[c.Rand.IntN(len(ids))]
		if settled[id] {
			continue
		}
		settled[id] = true

		item, _ := c.Index.Item(id)
		if dailyBlocklist[item.Type] {
			continue
		}
		entry, ok := c.BuildEntry(item, SectionDaily, TileSmall)
		if !ok {
			continue
		}
		sf.CatalogEntries = append(sf.CatalogEntries, entry)
		if item.Type == domain.TypeCharacter {
			characters++
		}
	}
	return sf, nil
}
