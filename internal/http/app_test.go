package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"itemshop/internal/config"
	"itemshop/internal/domain"
	"itemshop/internal/http/handlers"
	"itemshop/internal/repos"
	"itemshop/internal/services"
	"itemshop/internal/shop"
)

const adminToken = "test-token"

type genFunc func(ctx context.Context) (*domain.Shop, error)

func (f genFunc) Generate(ctx context.Context) (*domain.Shop, error) { return f(ctx) }

func sampleShop() *domain.Shop {
	s := shop.CreateShop(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	daily := domain.NewStorefront(shop.DailyStorefront)
	daily.CatalogEntries = append(daily.CatalogEntries, domain.CatalogEntry{OfferID: ":/abc", DevName: "[VIRTUAL] 1x AthenaPickaxe:Pickaxe_A for 800 MtxCurrency"})
	shop.Push(s, daily)
	shop.Push(s, domain.NewStorefront(shop.WeeklyStorefront))
	shop.Push(s, domain.NewStorefront(shop.BattlePassStorefront(10)))
	return s
}

type testApp struct {
	app  *fiber.App
	db   *sqlx.DB
	fail bool
	mu   sync.Mutex
}

func (a *testApp) setFail(v bool) {
	a.mu.Lock()
	a.fail = v
	a.mu.Unlock()
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	profiles := t.TempDir()
	for _, id := range services.DefaultProfiles {
		_ = os.WriteFile(filepath.Join(profiles, id+".json"), []byte(`{"profileId":"`+id+`"}`), 0o644)
	}

	ta := &testApp{db: db}
	gen := genFunc(func(context.Context) (*domain.Shop, error) {
		ta.mu.Lock()
		defer ta.mu.Unlock()
		if ta.fail {
			return nil, shop.ErrBattlePass
		}
		return sampleShop(), nil
	})
	cfg := config.Config{AdminToken: adminToken, ProfilesDir: profiles, Season: 10}
	shops := services.NewShopService(gen, repos.NewShopRepo(db), cfg.Season)

	engine := html.New("../../web/templates", ".html")
	ta.app = fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	handlers.Mount(ta.app, handlers.NewDeps(db, cfg, shops))
	return ta
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func jsonReq(method, path string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func quietLogs(t *testing.T) *lockedBuffer {
	t.Helper()
	buf := &lockedBuffer{}
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return buf
}

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// actions returns the action names logged so far.
func (l *lockedBuffer) actions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, line := range strings.Split(l.b.String(), "\n") {
		var e struct {
			Action string `json:"action"`
		}
		if json.Unmarshal([]byte(strings.TrimSpace(line)), &e) == nil && e.Action != "" {
			out = append(out, e.Action)
		}
	}
	return out
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
