package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"itemshop/internal/domain"
	applog "itemshop/internal/log"
	"itemshop/internal/repos"
	"itemshop/internal/shop"
)

var (
	ErrGenerationInProgress = errors.New("shop generation already in progress")
	ErrNoShop               = errors.New("no shop published")
)

type ShopGenerator interface {
	Generate(ctx context.Context) (*domain.Shop, error)
}

// Published is an immutable published shop. Document is the serialized form
// served to clients.
type Published struct {
	domain.PublishedShop
	Document []byte
}

// ShopService owns the published shop. Readers always see either the previous
// or the next complete shop.
type ShopService struct {
	Gen    ShopGenerator
	Repo   *repos.ShopRepo
	Season int
	Now    func() time.Time

	running sync.Mutex
	current atomic.Pointer[Published]
}

func NewShopService(gen ShopGenerator, repo *repos.ShopRepo, season int) *ShopService {
	return &ShopService{Gen: gen, Repo: repo, Season: season, Now: time.Now}
}

// Regenerate runs one pass and publishes it. Concurrent calls are rejected.
func (s *ShopService) Regenerate(ctx context.Context) (*Published, error) {
	if !s.running.TryLock() {
		return nil, ErrGenerationInProgress
	}
	defer s.running.Unlock()

	started := s.Now()
	applog.Info(nil, "shop.generate.start", map[string]any{"season": s.Season})

	p, err := s.generate(ctx, started)
	if err != nil {
		applog.Error(nil, "shop.generate.fail", err, map[string]any{"season": s.Season, "elapsed_ms": applog.Elapsed(started)})
		return nil, err
	}
	s.current.Store(p)
	applog.Audit(nil, "shop.publish", map[string]any{"id": p.ID, "expiration": p.Expiration})
	return p, nil
}

func (s *ShopService) generate(ctx context.Context, started time.Time) (*Published, error) {
	built, err := s.Gen.Generate(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(built)
	if err != nil {
		return nil, fmt.Errorf("encode shop: %w", err)
	}

	p := &Published{
		PublishedShop: domain.PublishedShop{
			ID:          uuid.NewString(),
			Season:      s.Season,
			Expiration:  built.Expiration.UTC().Format(time.RFC3339),
			GeneratedAt: started.UTC().Format(time.RFC3339Nano),
			Daily:       count(built, shop.DailyStorefront),
			Weekly:      count(built, shop.WeeklyStorefront),
			BattlePass:  count(built, shop.BattlePassStorefront(s.Season)),
		},
		Document: doc,
	}
	if s.Repo != nil {
		rec := p.PublishedShop
		rec.Document = string(doc)
		if err := s.Repo.Save(rec); err != nil {
			return nil, fmt.Errorf("persist shop: %w", err)
		}
	}
	return p, nil
}

func count(s *domain.Shop, name string) int {
	sf, _ := s.Storefront(name)
	return len(sf.CatalogEntries)
}

// Current returns the published shop or ErrNoShop.
func (s *ShopService) Current() (*Published, error) {
	if p := s.current.Load(); p != nil {
		return p, nil
	}
	return nil, ErrNoShop
}

// Restore publishes the most recently persisted shop, if any.
func (s *ShopService) Restore() error {
	if s.Repo == nil {
		return nil
	}
	rec, err := s.Repo.Latest()
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore shop: %w", err)
	}
	p := &Published{PublishedShop: *rec, Document: []byte(rec.Document)}
	p.PublishedShop.Document = ""
	s.current.CompareAndSwap(nil, p)
	applog.Info(nil, "shop.restore", map[string]any{"id": p.ID, "generated_at": p.GeneratedAt})
	return nil
}

func (s *ShopService) History(limit int) ([]domain.PublishedShop, error) {
	if s.Repo == nil {
		return nil, nil
	}
	return s.Repo.Recent(limit)
}
