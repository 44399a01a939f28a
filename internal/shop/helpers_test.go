package shop_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"itemshop/internal/assets"
	"itemshop/internal/catalog"
	"itemshop/internal/domain"
	"itemshop/internal/pricing"
	"itemshop/internal/shop"
)

func rec(id, typ, rarity, set string) catalog.Record {
	return catalog.Record{
		ID:           id,
		Type:         &catalog.Value{BackendValue: typ},
		Rarity:       &catalog.Value{BackendValue: "EFortRarity::" + rarity},
		Set:          &catalog.Value{BackendValue: set, Value: set},
		Introduction: &catalog.Introduction{BackendValue: 5},
		ShopHistory:  []string{"2019-01-01"},
	}
}

func backpackFor(id, ownerID, set string) catalog.Record {
	r := rec(id, domain.TypeBackpack, "Epic", set)
	r.ItemPreviewHeroPath = "/Game/Athena/Items/Cosmetics/Characters/" + ownerID + "." + ownerID
	return r
}

func testContext(t *testing.T, seed uint64, recs []catalog.Record, table assets.Table) *shop.Context {
	t.Helper()
	idx := catalog.Build(recs, 10)
	c := shop.NewContext(idx, assets.Resolve(idx, table), pricing.Default(), rand.New(rand.NewPCG(seed, seed*31+7)))
	n := 0
	c.NewOfferID = func() string {
		n++
		return fmt.Sprintf("offer-%d", n)
	}
	return c
}

func itemType(templateID string) string {
	typ, _, _ := strings.Cut(templateID, ":")
	return typ
}

type sourceFunc func(ctx context.Context) ([]catalog.Record, error)

func (f sourceFunc) Fetch(ctx context.Context) ([]catalog.Record, error) { return f(ctx) }
