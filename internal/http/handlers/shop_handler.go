package handlers

import (
	"errors"

	applog "itemshop/internal/log"
	"itemshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ShopHandler struct {
	Shops *services.ShopService
}

// GET /fortnite/api/storefront/v2/catalog, GET /api/v1/shop
func (h *ShopHandler) Catalog(c *fiber.Ctx) error {
	p, err := h.Shops.Current()
	if errors.Is(err, services.ErrNoShop) {
		applog.Warn(c, "shop.serve.empty", nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "shop is not available yet"})
	}
	if err != nil {
		return err
	}
	c.Set("X-Shop-Id", p.ID)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(p.Document)
}
