package shop_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"itemshop/internal/catalog"
	"itemshop/internal/domain"
	"itemshop/internal/shop"
)

func TestSelectWeekly_ReachesCompleteSets(t *testing.T) {
	var recs []catalog.Record
	for s := 0; s < 6; s++ {
		set := fmt.Sprintf("Set%d", s)
		recs = append(recs,
			rec(fmt.Sprintf("CID_%d", s), domain.TypeCharacter, "Epic", set),
			rec(fmt.Sprintf("Pickaxe_%d", s), domain.TypePickaxe, "Rare", set),
			rec(fmt.Sprintf("Glider_%d", s), domain.TypeGlider, "Legendary", set),
		)
	}

	for seed := uint64(1); seed <= 10; seed++ {
		c := testContext(t, seed, recs, nil)
		sf, err := c.SelectWeekly()
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if got := shop.CompleteSets(sf, c.Index); got < shop.WeeklyCompleteSets {
			t.Fatalf("seed %d: want >= %d complete sets, got %d", seed, shop.WeeklyCompleteSets, got)
		}
		// Every drawn set here is complete, so the loop stops after exactly three.
		if len(sf.CatalogEntries) != 9 {
			t.Fatalf("seed %d: want 9 entries, got %d", seed, len(sf.CatalogEntries))
		}
		for _, e := range sf.CatalogEntries {
			if len(e.Categories) != 1 {
				t.Fatalf("seed %d: entry %s not tagged with its set", seed, e.OfferID)
			}
			_, id, _ := strings.Cut(e.ItemGrants[0].TemplateID, ":")
			item, _ := c.Index.Item(id)
			if item == nil || item.SetID != e.Categories[0] {
				t.Fatalf("seed %d: entry %s tagged %v", seed, e.ItemGrants[0].TemplateID, e.Categories)
			}
			if e.Display.SectionID != "Featured" || e.Display.TileSize != "Normal" {
				t.Fatalf("seed %d: unexpected display %+v", seed, e.Display)
			}
		}
	}
}

func TestSelectWeekly_SetWithUnpricedMemberIsIncomplete(t *testing.T) {
	c := testContext(t, 5, []catalog.Record{
		rec("CID_trio", domain.TypeCharacter, "Epic", "Trio"),
		rec("Pickaxe_trio", domain.TypePickaxe, "Rare", "Trio"),
		rec("Toy_trio", domain.TypeToy, "Rare", "Trio"),
	}, nil)

	sf, err := c.SelectWeekly()
	if !errors.Is(err, shop.ErrInsufficientItems) {
		t.Fatalf("want ErrInsufficientItems, got %v", err)
	}
	if len(sf.CatalogEntries) != 2 {
		t.Fatalf("want 2 priced entries, got %d", len(sf.CatalogEntries))
	}
	for _, e := range sf.CatalogEntries {
		if len(e.Categories) != 1 || e.Categories[0] != "Trio" {
			t.Fatalf("entry not tagged with set id: %v", e.Categories)
		}
	}
	if n := shop.CompleteSets(sf, c.Index); n != 0 {
		t.Fatalf("set missing a member must not count as complete, got %d", n)
	}
}

func TestSelectWeekly_NoSets(t *testing.T) {
	c := testContext(t, 1, nil, nil)
	sf, err := c.SelectWeekly()
	if !errors.Is(err, shop.ErrInsufficientItems) || len(sf.CatalogEntries) != 0 {
		t.Fatalf("want empty storefront and ErrInsufficientItems, got %d/%v", len(sf.CatalogEntries), err)
	}
}
