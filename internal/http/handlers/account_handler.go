package handlers

import (
	"database/sql"
	"errors"

	applog "itemshop/internal/log"
	"itemshop/internal/repos"
	"itemshop/internal/services"
	"itemshop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	Accounts *services.AccountService
	Profiles *repos.ProfileRepo
}

// POST /api/v1/accounts
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	u, err := h.Accounts.Register(in)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		applog.Security(c, "account.register.invalid", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAccountExists):
		applog.Security(c, "account.register.exists", map[string]any{"email": in.Email})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "account already exists"})
	case err != nil:
		applog.Error(c, "account.register.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
	}
	applog.Audit(c, "account.register", map[string]any{"account_id": u.AccountID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"accountId": u.AccountID,
		"username":  u.Username,
		"email":     u.Email,
	})
}

// GET /api/v1/accounts/:accountId/profiles/:profileId
func (h *AccountHandler) Profile(c *fiber.Ctx) error {
	accountID, ok := validate.AccountID(c.Params("accountId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}
	profileID, ok := validate.ProfileID(c.Params("profileId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid profile id"})
	}
	p, err := h.Profiles.Get(accountID, profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(p.Document)
}
