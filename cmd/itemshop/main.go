package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"itemshop/internal/catalog"
	"itemshop/internal/config"
	"itemshop/internal/http/handlers"
	applog "itemshop/internal/log"
	"itemshop/internal/pricing"
	"itemshop/internal/repos"
	"itemshop/internal/services"
	"itemshop/internal/shop"
)

func main() {
	config.LoadDotenv(".env")
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		config.Exitf("open db: %v", err)
	}
	defer db.Close()
	if err := repos.SeedOperator(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		config.Exitf("seed operator: %v", err)
	}

	gen := shop.NewGenerator(
		catalog.NewFetcher(cfg.CatalogURL, cfg.CatalogTimeout),
		pricing.Default(),
		cfg.Season,
		cfg.DisplayAssetsPath,
		cfg.StorefrontDir,
	)
	gen.MaxAttempts = cfg.MaxSampleAttempts

	shops := services.NewShopService(gen, repos.NewShopRepo(db), cfg.Season)
	if err := shops.Restore(); err != nil {
		applog.Error(nil, "shop.restore.fail", err, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go services.NewScheduler(shops, cfg.GenerateOnStart).Run(ctx)

	engine := html.New(cfg.TemplatesDir, ".html")
	if cfg.Env != "production" {
		engine.Reload(true)
	}
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	handlers.Mount(app, handlers.NewDeps(db, cfg, shops))

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "season": cfg.Season})
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
