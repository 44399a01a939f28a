package shop

import (
	"fmt"

	"itemshop/internal/catalog"
	"itemshop/internal/domain"
)

const (
	WeeklyStorefront   = "BRWeeklyStorefront"
	WeeklyCompleteSets = 3
)

// SelectWeekly draws whole sets until WeeklyCompleteSets of them are fully
// represented. Every priced member of a drawn set becomes a Featured entry
// tagged with the set id; a set with an unpriced member is kept but never
// counts as complete. Sets are drawn at most once per pass.
func (c *Context) SelectWeekly() (domain.Storefront, error) {
	sf := domain.NewStorefront(WeeklyStorefront)
	setIDs := c.Index.SetIDs()
	visited := make(map[string]bool)

	for attempt := 0; CompleteSets(sf, c.Index) < WeeklyCompleteSets; attempt++ {
		if attempt >= c.MaxAttempts || len(visited) >= len(setIDs) {
			return sf, fmt.Errorf("%w: weekly rotation has %d of %d complete sets after %d draws",
				ErrInsufficientItems, CompleteSets(sf, c.Index), WeeklyCompleteSets, attempt)
		}

		id := setIDs[c.Rand.IntN(len(setIDs))]
		if visited[id] {
			continue
		}
		visited[id] = true

		set, _ := c.Index.Set(id)
		for _, item := range set.Members {
			entry, ok := c.BuildEntry(item, SectionFeatured, TileNormal)
			if !ok {
				continue
			}
			entry.Categories = []string{set.ID}
			sf.CatalogEntries = append(sf.CatalogEntries, entry)
		}
	}
	return sf, nil
}

// CompleteSets counts the sets whose every member is granted by an entry
// tagged with that set.
func CompleteSets(sf domain.Storefront, idx *catalog.Index) int {
	granted := make(map[string]map[string]bool)
	for _, e := range sf.CatalogEntries {
		if len(e.ItemGrants) == 0 {
			continue
		}
		for _, tag := range e.Categories {
			if granted[tag] == nil {
				granted[tag] = make(map[string]bool)
			}
			granted[tag][e.ItemGrants[0].TemplateID] = true
		}
	}

	n := 0
	for setID, got := range granted {
		set, ok := idx.Set(setID)
		if !ok {
			continue
		}
		complete := true
		for _, m := range set.Members {
			if !got[m.TemplateID()] {
				complete = false
				break
			}
		}
		if complete {
			n++
		}
	}
	return n
}
