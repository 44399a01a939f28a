// Package catalog ingests the remote cosmetic feed into a read-only index of
// sellable items and their sets.
package catalog

import (
	"sort"
	"strings"

	"itemshop/internal/domain"
)

// Index is built once per generation pass and is not modified afterwards.
type Index struct {
	items     map[string]*domain.CosmeticItem
	folded    map[string]string // lower-case id -> id
	sets      map[string]*domain.Set
	backpacks map[string]*domain.CosmeticItem // owner id -> backpack
	itemIDs   []string
	setIDs    []string
}

// Build filters records eligible for season and indexes them.
func Build(records []Record, season int) *Index {
	idx := &Index{
		items:     make(map[string]*domain.CosmeticItem),
		folded:    make(map[string]string),
		sets:      make(map[string]*domain.Set),
		backpacks: make(map[string]*domain.CosmeticItem),
	}
	types := typeTable{}

	for _, r := range records {
		if !r.Eligible(season) {
			continue
		}
		if _, dup := idx.items[r.ID]; dup {
			continue
		}
		t := types.intern(*r.Type)
		item := &domain.CosmeticItem{
			ID:              r.ID,
			Type:            t.BackendValue,
			TypeName:        t.DisplayValue,
			Rarity:          rarityName(r.Rarity),
			SetID:           r.Set.BackendValue,
			Season:          r.Introduction.BackendValue,
			PreviewHeroPath: r.ItemPreviewHeroPath,
		}
		if r.Series != nil {
			item.Series = r.Series.BackendValue
		}

		set, ok := idx.sets[item.SetID]
		if !ok {
			set = &domain.Set{ID: item.SetID, Value: r.Set.Value, Text: r.Set.Text}
			idx.sets[item.SetID] = set
			idx.setIDs = append(idx.setIDs, item.SetID)
		}
		set.Members = append(set.Members, item)

		idx.items[item.ID] = item
		idx.folded[strings.ToLower(item.ID)] = item.ID
		idx.itemIDs = append(idx.itemIDs, item.ID)
	}

	sort.Strings(idx.itemIDs)
	sort.Strings(idx.setIDs)
	idx.linkBackpacks()
	return idx
}

// linkBackpacks points each character at the backpack whose preview hero path
// names it. Characters without a matching backpack are left alone.
func (idx *Index) linkBackpacks() {
	for _, id := range idx.itemIDs {
		bp := idx.items[id]
		if bp.Type != domain.TypeBackpack || bp.PreviewHeroPath == "" {
			continue
		}
		owner, ok := idx.Lookup(heroKey(bp.PreviewHeroPath))
		if !ok || owner.Type == domain.TypeBackpack {
			continue
		}
		if _, taken := idx.backpacks[owner.ID]; !taken {
			idx.backpacks[owner.ID] = bp
		}
	}
}

// heroKey returns the trailing segment of an asset path, without any
// "Name.Name" object suffix.
func heroKey(path string) string {
	seg := path[strings.LastIndex(path, "/")+1:]
	if dot := strings.IndexByte(seg, '.'); dot >= 0 {
		seg = seg[:dot]
	}
	return seg
}

func rarityName(v *Value) string {
	if v == nil {
		return ""
	}
	name := v.BackendValue
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if name == "" {
		name = v.DisplayValue
	}
	return name
}

func (idx *Index) Item(id string) (*domain.CosmeticItem, bool) {
	it, ok := idx.items[id]
	return it, ok
}

// Lookup resolves an id exactly, then case-insensitively.
func (idx *Index) Lookup(key string) (*domain.CosmeticItem, bool) {
	if it, ok := idx.items[key]; ok {
		return it, true
	}
	if id, ok := idx.folded[strings.ToLower(key)]; ok {
		return idx.items[id], true
	}
	return nil, false
}

func (idx *Index) Set(id string) (*domain.Set, bool) {
	s, ok := idx.sets[id]
	return s, ok
}

// Backpack returns the backpack linked to the item, if any.
func (idx *Index) Backpack(itemID string) (*domain.CosmeticItem, bool) {
	bp, ok := idx.backpacks[itemID]
	return bp, ok
}

// ItemIDs returns indexed ids in sorted order. Callers must not modify it.
func (idx *Index) ItemIDs() []string { return idx.itemIDs }

// SetIDs returns set ids in sorted order. Callers must not modify it.
func (idx *Index) SetIDs() []string { return idx.setIDs }

func (idx *Index) Len() int { return len(idx.itemIDs) }

// typeTable collapses category codes that differ only by case onto the first
// one seen during ingestion.
type typeTable map[string]Value

func (t typeTable) intern(v Value) Value {
	family := strings.ToLower(v.BackendValue)
	if first, ok := t[family]; ok {
		return first
	}
	t[family] = v
	return v
}
