// Package assets resolves curated display assets onto catalog items and builds
// the display-asset object paths used by catalog entries.
package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"itemshop/internal/catalog"
	"itemshop/internal/domain"
)

const (
	displayAssetRoot    = "/Game/Catalog/DisplayAssets/"
	newDisplayAssetRoot = "/Game/Catalog/NewDisplayAssets/"
)

// DisplayAssetPath expands an asset name into its object path.
func DisplayAssetPath(name string) string { return objectPath(displayAssetRoot, name) }

// NewDisplayAssetPath expands a v2 asset name into its object path.
func NewDisplayAssetPath(name string) string { return objectPath(newDisplayAssetRoot, name) }

func objectPath(root, name string) string {
	if name == "" || strings.HasPrefix(name, "/") {
		return name
	}
	return root + name + "." + name
}

// Table maps opaque keys to asset names of the form <Prefix>_<ItemKey>.
type Table map[string]string

func LoadTable(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Resolved maps item ids to their display asset name.
type Resolved map[string]string

func (r Resolved) For(itemID string) string { return r[itemID] }

// characterKey matches the CID_<n> (or CID_A_<n>) form of a character key.
var characterKey = regexp.MustCompile(`(?i)^CID_(?:A_)?[0-9]+_`)

// ItemKey strips the asset's type prefix: DA_<Section>_ for section assets,
// otherwise the first segment (DAv2_).
func ItemKey(asset string) string {
	parts := strings.Split(asset, "_")
	if len(parts) > 2 && strings.EqualFold(parts[0], "DA") {
		return strings.Join(parts[2:], "_")
	}
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], "_")
}

// Resolve attaches assets to indexed items. Direct key matches win; character
// assets without a direct match fall back to the first indexed character in
// id order. Anything else is ignored.
func Resolve(idx *catalog.Index, table Table) Resolved {
	out := Resolved{}
	var fallback []string

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		asset := table[k]
		itemKey := ItemKey(asset)
		if itemKey == "" {
			continue
		}
		if item, ok := idx.Lookup(itemKey); ok {
			out[item.ID] = asset
			continue
		}
		if characterKey.MatchString(itemKey) {
			fallback = append(fallback, asset)
		}
	}

	if len(fallback) == 0 {
		return out
	}
	first, ok := firstCharacter(idx)
	if !ok {
		return out
	}
	if _, taken := out[first.ID]; !taken {
		out[first.ID] = fallback[0]
	}
	return out
}

func firstCharacter(idx *catalog.Index) (*domain.CosmeticItem, bool) {
	for _, id := range idx.ItemIDs() {
		item, _ := idx.Item(id)
		if item.Type == domain.TypeCharacter {
			return item, true
		}
	}
	return nil, false
}
