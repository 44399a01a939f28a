package domain

import (
	"encoding/json"
	"time"
)

// Cosmetic categories (backend values) used by the generator.
const (
	TypeCharacter = "AthenaCharacter"
	TypeBackpack  = "AthenaBackpack"
	TypeContrail  = "AthenaSkyDiveContrail"
	TypeMusicPack = "AthenaMusicPack"
	TypeToy       = "AthenaToy"
	TypePickaxe   = "AthenaPickaxe"
	TypeGlider    = "AthenaGlider"
	TypeDance     = "AthenaDance"
	TypeItemWrap  = "AthenaItemWrap"
	TypeSpray     = "AthenaSpray"
	TypeEmoji     = "AthenaEmoji"
	TypeLoading   = "AthenaLoadingScreen"
)

// CosmeticItem is a catalog record that passed ingestion.
type CosmeticItem struct {
	ID              string
	Type            string // backend value, e.g. AthenaCharacter
	TypeName        string
	Rarity          string // Common | Uncommon | Rare | Epic | Legendary | ...
	Series          string
	SetID           string
	Season          int
	PreviewHeroPath string
}

// TemplateID is the profile item id granted on purchase.
func (i *CosmeticItem) TemplateID() string { return i.Type + ":" + i.ID }

type Set struct {
	ID      string
	Value   string
	Text    string
	Members []*CosmeticItem
}

type ItemGrant struct {
	TemplateID string `json:"templateId"`
	Quantity   int    `json:"quantity"`
}

type Requirement struct {
	RequirementType string `json:"requirementType"`
	RequiredID      string `json:"requiredId"`
	MinQuantity     int    `json:"minQuantity"`
}

type Price struct {
	CurrencyType        string `json:"currencyType"`
	CurrencySubType     string `json:"currencySubType"`
	RegularPrice        int    `json:"regularPrice"`
	DynamicRegularPrice int    `json:"dynamicRegularPrice"`
	FinalPrice          int    `json:"finalPrice"`
	SaleExpiration      string `json:"saleExpiration"`
	BasePrice           int    `json:"basePrice"`
}

type GiftInfo struct {
	Enabled                 bool          `json:"bIsEnabled"`
	ForcedGiftBoxTemplateID string        `json:"forcedGiftBoxTemplateId"`
	PurchaseRequirements    []Requirement `json:"purchaseRequirements"`
	GiftRecordIDs           []string      `json:"giftRecordIds"`
}

type MetaInfo struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DisplayMeta is the single source for both the meta bag and the metaInfo list.
type DisplayMeta struct {
	DisplayAssetPath    string
	NewDisplayAssetPath string
	TileSize            string
	SectionID           string
}

func (m DisplayMeta) Pairs() []MetaInfo {
	return []MetaInfo{
		{Key: "DisplayAssetPath", Value: m.DisplayAssetPath},
		{Key: "NewDisplayAssetPath", Value: m.NewDisplayAssetPath},
		{Key: "TileSize", Value: m.TileSize},
		{Key: "SectionId", Value: m.SectionID},
	}
}

func (m DisplayMeta) Bag() map[string]string {
	bag := make(map[string]string, 4)
	for _, p := range m.Pairs() {
		bag[p.Key] = p.Value
	}
	return bag
}

// CatalogEntry is one purchasable offer. Entries republished from a season file
// keep their original bytes and marshal verbatim.
type CatalogEntry struct {
	OfferID      string
	OfferType    string
	DevName      string
	Requirements []Requirement
	Prices       []Price
	ItemGrants   []ItemGrant
	GiftInfo     GiftInfo
	Display      DisplayMeta
	Categories   []string
	Refundable   bool

	raw json.RawMessage
}

// RawEntry wraps an already-formed entry document.
func RawEntry(offerID, devName string, raw json.RawMessage) CatalogEntry {
	return CatalogEntry{OfferID: offerID, DevName: devName, raw: raw}
}

func (e CatalogEntry) Raw() json.RawMessage { return e.raw }

type entryWire struct {
	OfferID              string            `json:"offerId"`
	OfferType            string            `json:"offerType"`
	DevName              string            `json:"devName"`
	ItemGrants           []ItemGrant       `json:"itemGrants"`
	Requirements         []Requirement     `json:"requirements"`
	Categories           []string          `json:"categories"`
	MetaInfo             []MetaInfo        `json:"metaInfo"`
	Meta                 map[string]string `json:"meta"`
	GiftInfo             GiftInfo          `json:"giftInfo"`
	Prices               []Price           `json:"prices"`
	Refundable           bool              `json:"refundable"`
	DisplayAssetPath     string            `json:"displayAssetPath"`
	NewDisplayAssetPath  string            `json:"NewDisplayAssetPath"`
	Title                string            `json:"title"`
	ShortDescription     string            `json:"shortDescription"`
	Description          string            `json:"description"`
	AppStoreID           []string          `json:"appStoreId"`
	FulfillmentIDs       []string          `json:"fulfillmentIds"`
	DailyLimit           int               `json:"dailyLimit"`
	WeeklyLimit          int               `json:"weeklyLimit"`
	MonthlyLimit         int               `json:"monthlyLimit"`
	SortPriority         int               `json:"sortPriority"`
	CatalogGroupPriority int               `json:"catalogGroupPriority"`
	FilterWeight         int               `json:"filterWeight"`
	MatchFilter          string            `json:"matchFilter"`
	CatalogGroup         string            `json:"catalogGroup"`
}

func (e CatalogEntry) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	gift := e.GiftInfo
	gift.PurchaseRequirements = orEmpty(gift.PurchaseRequirements)
	gift.GiftRecordIDs = orEmpty(gift.GiftRecordIDs)
	return json.Marshal(entryWire{
		OfferID:             e.OfferID,
		OfferType:           e.OfferType,
		DevName:             e.DevName,
		ItemGrants:          orEmpty(e.ItemGrants),
		Requirements:        orEmpty(e.Requirements),
		Categories:          orEmpty(e.Categories),
		MetaInfo:            e.Display.Pairs(),
		Meta:                e.Display.Bag(),
		GiftInfo:            gift,
		Prices:              orEmpty(e.Prices),
		Refundable:          e.Refundable,
		DisplayAssetPath:    e.Display.DisplayAssetPath,
		NewDisplayAssetPath: e.Display.NewDisplayAssetPath,
		AppStoreID:          []string{},
		FulfillmentIDs:      []string{},
		DailyLimit:          -1,
		WeeklyLimit:         -1,
		MonthlyLimit:        -1,
	})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type Storefront struct {
	Name           string         `json:"name"`
	CatalogEntries []CatalogEntry `json:"catalogEntries"`
}

func NewStorefront(name string) Storefront {
	return Storefront{Name: name, CatalogEntries: []CatalogEntry{}}
}

type Shop struct {
	Expiration         time.Time
	RefreshIntervalHrs int
	DailyPurchaseHrs   int
	Storefronts        []Storefront
}

// Storefront returns the named storefront, if present.
func (s Shop) Storefront(name string) (Storefront, bool) {
	for _, sf := range s.Storefronts {
		if sf.Name == name {
			return sf, true
		}
	}
	return Storefront{}, false
}

func (s Shop) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Expiration         string       `json:"expiration"`
		RefreshIntervalHrs int          `json:"refreshIntervalHrs"`
		DailyPurchaseHrs   int          `json:"dailyPurchaseHrs"`
		Storefronts        []Storefront `json:"storefronts"`
	}{
		Expiration:         s.Expiration.UTC().Format("2006-01-02T15:04:05.000Z"),
		RefreshIntervalHrs: s.RefreshIntervalHrs,
		DailyPurchaseHrs:   s.DailyPurchaseHrs,
		Storefronts:        orEmpty(s.Storefronts),
	})
}
