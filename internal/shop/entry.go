package shop

import (
	"fmt"
	"slices"
	"strings"

	"itemshop/internal/assets"
	"itemshop/internal/domain"
)

// Section selects the display-asset and offer-id conventions of a shelf.
type Section struct {
	ID          string
	AssetPrefix string
	OfferPrefix string
}

var (
	SectionDaily    = Section{ID: "Daily", AssetPrefix: "DA_Daily", OfferPrefix: ":/"}
	SectionFeatured = Section{ID: "Featured", AssetPrefix: "DA_Featured", OfferPrefix: "v2:/"}
)

type TileSize string

const (
	TileSmall  TileSize = "Small"
	TileNormal TileSize = "Normal"
)

const (
	offerTypeStatic     = "StaticPrice"
	denyOnItemOwnership = "DenyOnItemOwnership"
	currencyMtx         = "MtxCurrency"
	currencySubType     = "Currency"
	saleNeverExpires    = "9999-12-31T23:59:59.999Z"
)

// BuildEntry builds the offer for one item. It returns false when the item has
// no price; such an entry must not be sold.
func (c *Context) BuildEntry(item *domain.CosmeticItem, section Section, tile TileSize) (domain.CatalogEntry, bool) {
	price, ok := c.Prices.Price(item)
	if !ok {
		return domain.CatalogEntry{}, false
	}

	e := domain.CatalogEntry{
		OfferID:    section.OfferPrefix + c.NewOfferID(),
		OfferType:  offerTypeStatic,
		DevName:    fmt.Sprintf("[VIRTUAL] 1x %s for %d %s", item.TemplateID(), price, currencyMtx),
		Display:    c.displayMeta(item, section, tile),
		Refundable: true,
		Prices: []domain.Price{{
			CurrencyType:        currencyMtx,
			CurrencySubType:     currencySubType,
			RegularPrice:        price,
			DynamicRegularPrice: -1,
			FinalPrice:          price,
			SaleExpiration:      saleNeverExpires,
			BasePrice:           price,
		}},
		ItemGrants:   []domain.ItemGrant{grant(item)},
		Requirements: []domain.Requirement{denyOwned(item)},
	}

	if bp, ok := c.Index.Backpack(item.ID); ok {
		e.ItemGrants = append(e.ItemGrants, grant(bp))
		e.Requirements = append(e.Requirements, denyOwned(bp))
	}

	e.GiftInfo = domain.GiftInfo{
		Enabled:                 true,
		ForcedGiftBoxTemplateID: "",
		PurchaseRequirements:    slices.Clone(e.Requirements),
		GiftRecordIDs:           []string{},
	}
	return e, true
}

// displayMeta reuses a resolved asset when it already follows the section's
// naming, otherwise it synthesizes <prefix>_<item id>. The resolved asset, if
// any, is always carried as the new display asset.
func (c *Context) displayMeta(item *domain.CosmeticItem, section Section, tile TileSize) domain.DisplayMeta {
	resolved := c.Assets.For(item.ID)
	m := domain.DisplayMeta{
		TileSize:            string(tile),
		SectionID:           section.ID,
		NewDisplayAssetPath: assets.NewDisplayAssetPath(resolved),
	}
	if resolved != "" && strings.Contains(resolved, section.AssetPrefix) {
		m.DisplayAssetPath = assets.DisplayAssetPath(resolved)
	} else {
		m.DisplayAssetPath = assets.DisplayAssetPath(section.AssetPrefix + "_" + item.ID)
	}
	return m
}

func grant(item *domain.CosmeticItem) domain.ItemGrant {
	return domain.ItemGrant{TemplateID: item.TemplateID(), Quantity: 1}
}

func denyOwned(item *domain.CosmeticItem) domain.Requirement {
	return domain.Requirement{RequirementType: denyOnItemOwnership, RequiredID: item.TemplateID(), MinQuantity: 1}
}
