package handlers

import (
	"encoding/json"
	"errors"

	applog "itemshop/internal/log"
	"itemshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Shops *services.ShopService
}

type storefrontView struct {
	Name           string `json:"name"`
	CatalogEntries []struct {
		OfferID string `json:"offerId"`
		DevName string `json:"devName"`
		Prices  []struct {
			FinalPrice int `json:"finalPrice"`
		} `json:"prices"`
	} `json:"catalogEntries"`
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	data := fiber.Map{}
	if p, err := h.Shops.Current(); err == nil {
		var doc struct {
			Storefronts []storefrontView `json:"storefronts"`
		}
		if err := json.Unmarshal(p.Document, &doc); err != nil {
			applog.Error(c, "admin.shop.decode.fail", err, map[string]any{"id": p.ID})
		}
		data["Shop"] = p.PublishedShop
		data["Storefronts"] = doc.Storefronts
	}
	hist, err := h.Shops.History(20)
	if err != nil {
		applog.Error(c, "admin.shop.history.fail", err, nil)
	}
	data["History"] = hist
	data["Flash"] = c.Query("status")
	return render(c, "admin_shop", data)
}

// POST /api/v1/admin/shop/regenerate
func (h *AdminHandler) Regenerate(c *fiber.Ctx) error {
	p, err := h.Shops.Regenerate(c.UserContext())
	switch {
	case errors.Is(err, services.ErrGenerationInProgress):
		applog.Warn(c, "admin.shop.regenerate.busy", nil)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "generation already in progress"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "generation failed"})
	}
	applog.Audit(c, "admin.shop.regenerate", map[string]any{"id": p.ID})
	return c.JSON(fiber.Map{
		"id":         p.ID,
		"expiration": p.Expiration,
		"daily":      p.Daily,
		"weekly":     p.Weekly,
		"battlepass": p.BattlePass,
	})
}

// POST /admin/shop/regenerate
func (h *AdminHandler) RegenerateForm(c *fiber.Ctx) error {
	p, err := h.Shops.Regenerate(c.UserContext())
	switch {
	case errors.Is(err, services.ErrGenerationInProgress):
		return c.Redirect("/admin?status=busy")
	case err != nil:
		return c.Redirect("/admin?status=failed")
	}
	applog.Audit(c, "admin.shop.regenerate", map[string]any{"id": p.ID})
	return c.Redirect("/admin?status=ok")
}
