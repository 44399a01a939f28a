package pricing

import (
	"strings"

	"itemshop/internal/domain"
)

// Table prices items by category then rarity. Rarity keys are lower case.
type Table map[string]map[string]int

// Default is the in-game MtxCurrency price list. Rarities outside
// common..legendary (series, mythic) are not sold.
func Default() Table {
	return Table{
		domain.TypeCharacter: {"common": 800, "uncommon": 800, "rare": 1200, "epic": 1500, "legendary": 2000},
		domain.TypeBackpack:  {"common": 200, "uncommon": 200, "rare": 300, "epic": 500, "legendary": 500},
		domain.TypePickaxe:   {"common": 500, "uncommon": 500, "rare": 800, "epic": 1200, "legendary": 1500},
		domain.TypeGlider:    {"common": 500, "uncommon": 500, "rare": 800, "epic": 1200, "legendary": 1500},
		domain.TypeDance:     {"common": 200, "uncommon": 200, "rare": 500, "epic": 800, "legendary": 800},
		domain.TypeItemWrap:  {"common": 300, "uncommon": 300, "rare": 500, "epic": 700, "legendary": 700},
		domain.TypeContrail:  {"common": 300, "uncommon": 300, "rare": 500, "epic": 500, "legendary": 500},
		domain.TypeSpray:     {"common": 100, "uncommon": 200, "rare": 300, "epic": 300, "legendary": 300},
		domain.TypeEmoji:     {"common": 100, "uncommon": 200, "rare": 300, "epic": 300, "legendary": 300},
		domain.TypeLoading:   {"common": 200, "uncommon": 200, "rare": 300, "epic": 500, "legendary": 500},
	}
}

// Price returns the item's price, or false when the item has none and must
// not be sold. Zero is never returned with true.
func (t Table) Price(item *domain.CosmeticItem) (int, bool) {
	if item == nil {
		return 0, false
	}
	byRarity, ok := t[item.Type]
	if !ok {
		return 0, false
	}
	p, ok := byRarity[strings.ToLower(item.Rarity)]
	if !ok || p <= 0 {
		return 0, false
	}
	return p, true
}
