package catalog_test

import (
	"testing"

	"itemshop/internal/catalog"
	"itemshop/internal/domain"
)

func rec(id, typ, set string, season int) catalog.Record {
	return catalog.Record{
		ID:           id,
		Type:         &catalog.Value{BackendValue: typ},
		Rarity:       &catalog.Value{BackendValue: "EFortRarity::Epic"},
		Set:          &catalog.Value{BackendValue: set, Value: set + " Set", Text: "Part of the " + set + " set."},
		Introduction: &catalog.Introduction{BackendValue: season},
		ShopHistory:  []string{"2019-08-01T00:00:00Z"},
	}
}

func TestBuild_FiltersIneligible(t *testing.T) {
	future := rec("CID_future", domain.TypeCharacter, "A", 11)
	zero := rec("CID_zero", domain.TypeCharacter, "A", 0)
	noSet := rec("CID_noset", domain.TypeCharacter, "A", 5)
	noSet.Set = nil
	noHistory := rec("CID_nohist", domain.TypeCharacter, "A", 5)
	noHistory.ShopHistory = nil
	emptyHistory := rec("CID_emptyhist", domain.TypeCharacter, "A", 5)
	emptyHistory.ShopHistory = []string{}
	noIntro := rec("CID_nointro", domain.TypeCharacter, "A", 5)
	noIntro.Introduction = nil
	noType := rec("CID_notype", domain.TypeCharacter, "A", 5)
	noType.Type = nil

	idx := catalog.Build([]catalog.Record{
		rec("CID_ok", domain.TypeCharacter, "A", 10),
		future, zero, noSet, noHistory, emptyHistory, noIntro, noType,
	}, 10)

	if idx.Len() != 1 {
		t.Fatalf("want 1 indexed item, got %d (%v)", idx.Len(), idx.ItemIDs())
	}
	it, ok := idx.Item("CID_ok")
	if !ok {
		t.Fatal("CID_ok missing")
	}
	if it.Rarity != "Epic" || it.Season != 10 || it.SetID != "A" {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestBuild_GroupsSets(t *testing.T) {
	idx := catalog.Build([]catalog.Record{
		rec("CID_1", domain.TypeCharacter, "Nightmare", 3),
		rec("Pickaxe_1", domain.TypePickaxe, "Nightmare", 3),
		rec("Glider_1", domain.TypeGlider, "Daybreak", 4),
		rec("CID_1", domain.TypeCharacter, "Nightmare", 3), // duplicate id
	}, 10)

	if got := idx.SetIDs(); len(got) != 2 || got[0] != "Daybreak" || got[1] != "Nightmare" {
		t.Fatalf("unexpected set ids %v", got)
	}
	s, ok := idx.Set("Nightmare")
	if !ok {
		t.Fatal("Nightmare set missing")
	}
	if len(s.Members) != 2 {
		t.Fatalf("want 2 members, got %d", len(s.Members))
	}
	if s.Value != "Nightmare Set" || s.Text == "" {
		t.Fatalf("set display metadata not kept: %+v", s)
	}
}

func TestBuild_LinksBackpacks(t *testing.T) {
	bp := rec("BID_001_Foo", domain.TypeBackpack, "Foo", 2)
	bp.ItemPreviewHeroPath = "/Game/Athena/Items/Cosmetics/Characters/CID_001_Athena_Commando_F_Foo.CID_001_Athena_Commando_F_Foo"
	orphan := rec("BID_002_Bar", domain.TypeBackpack, "Bar", 2)
	orphan.ItemPreviewHeroPath = "/Game/Athena/Items/Cosmetics/Characters/CID_999_Missing"

	idx := catalog.Build([]catalog.Record{
		rec("CID_001_Athena_Commando_F_Foo", domain.TypeCharacter, "Foo", 2),
		rec("CID_002_Athena_Commando_M_Bar", domain.TypeCharacter, "Bar", 2),
		bp, orphan,
	}, 10)

	got, ok := idx.Backpack("CID_001_Athena_Commando_F_Foo")
	if !ok || got.ID != "BID_001_Foo" {
		t.Fatalf("backpack not linked: %+v %v", got, ok)
	}
	if _, ok := idx.Backpack("CID_002_Athena_Commando_M_Bar"); ok {
		t.Fatal("CID_002 should not have a backpack")
	}
}

func TestBuild_CollapsesTypeCase(t *testing.T) {
	a := rec("CID_a", domain.TypeCharacter, "A", 1)
	a.Type.DisplayValue = "Outfit"
	b := rec("CID_b", "athenacharacter", "A", 1)

	idx := catalog.Build([]catalog.Record{a, b}, 10)
	it, _ := idx.Item("CID_b")
	if it.Type != domain.TypeCharacter || it.TypeName != "Outfit" {
		t.Fatalf("type not collapsed onto first seen: %+v", it)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	idx := catalog.Build([]catalog.Record{rec("CID_Mixed", domain.TypeCharacter, "A", 1)}, 10)
	if _, ok := idx.Lookup("cid_mixed"); !ok {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if _, ok := idx.Lookup("cid_other"); ok {
		t.Fatal("unexpected match")
	}
}
