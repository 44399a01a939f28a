package shop

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"itemshop/internal/assets"
	"itemshop/internal/catalog"
	"itemshop/internal/domain"
	applog "itemshop/internal/log"
)

// CatalogSource supplies the raw cosmetic feed.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]catalog.Record, error)
}

// Generator runs one complete generation pass per Generate call.
type Generator struct {
	Catalog       CatalogSource
	Prices        Pricer
	Season        int
	AssetsPath    string
	StorefrontDir string
	MaxAttempts   int

	Now        func() time.Time
	NewRand    func() *rand.Rand
	NewOfferID func() string
}

func NewGenerator(src CatalogSource, prices Pricer, season int, assetsPath, storefrontDir string) *Generator {
	return &Generator{
		Catalog:       src,
		Prices:        prices,
		Season:        season,
		AssetsPath:    assetsPath,
		StorefrontDir: storefrontDir,
		MaxAttempts:   DefaultMaxAttempts,
		Now:           time.Now,
	}
}

// Generate builds a complete shop. It never returns a partially built shop:
// a catalog or battle-pass failure, or an empty rotation, fails the pass.
func (g *Generator) Generate(ctx context.Context) (*domain.Shop, error) {
	started := g.Now()

	var (
		records    []catalog.Record
		table      assets.Table
		battlepass domain.Storefront
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		records, err = g.Catalog.Fetch(egCtx)
		return err
	})
	eg.Go(func() error {
		t, err := assets.LoadTable(g.AssetsPath)
		if err != nil {
			applog.Warn(nil, "shop.assets.skip", map[string]any{"path": g.AssetsPath, "error": err.Error()})
			t = assets.Table{}
		}
		table = t
		return nil
	})
	eg.Go(func() error {
		var err error
		battlepass, err = LoadBattlePass(g.StorefrontDir, g.Season)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	idx := catalog.Build(records, g.Season)
	gc := NewContext(idx, assets.Resolve(idx, table), g.Prices, g.newRand())
	if g.MaxAttempts > 0 {
		gc.MaxAttempts = g.MaxAttempts
	}
	if g.NewOfferID != nil {
		gc.NewOfferID = g.NewOfferID
	}

	daily, err := gc.SelectDaily()
	if err := tolerateShortfall("shop.daily.short", daily, err); err != nil {
		return nil, err
	}
	weekly, err := gc.SelectWeekly()
	if err := tolerateShortfall("shop.weekly.short", weekly, err); err != nil {
		return nil, err
	}

	shop := CreateShop(started)
	Push(shop, daily)
	Push(shop, weekly)
	Push(shop, battlepass)

	applog.Info(nil, "shop.generate.ok", map[string]any{
		"season":     g.Season,
		"items":      idx.Len(),
		"sets":       len(idx.SetIDs()),
		"daily":      len(daily.CatalogEntries),
		"weekly":     len(weekly.CatalogEntries),
		"battlepass": len(battlepass.CatalogEntries),
		"elapsed_ms": applog.Elapsed(started),
	})
	return shop, nil
}

// tolerateShortfall accepts a short rotation as long as it has entries.
func tolerateShortfall(action string, sf domain.Storefront, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInsufficientItems) && len(sf.CatalogEntries) > 0 {
		applog.Warn(nil, action, map[string]any{"storefront": sf.Name, "entries": len(sf.CatalogEntries), "error": err.Error()})
		return nil
	}
	return err
}

func (g *Generator) newRand() *rand.Rand {
	if g.NewRand != nil {
		return g.NewRand()
	}
	return nil
}
