package handlers

import (
	"crypto/subtle"

	"itemshop/internal/domain"
	applog "itemshop/internal/log"
	"itemshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminTokenHeader carries the operator token for API calls.
const AdminTokenHeader = "X-Admin-Token"

func sessionAdmin(c *fiber.Ctx, auth *services.AuthService) (*domain.User, bool) {
	sid := c.Cookies("sid")
	if sid == "" {
		return nil, false
	}
	u, err := auth.CurrentUser(sid)
	if err != nil || u == nil || u.Banned || !u.HasRole(domain.RoleAdmin) {
		return u, false
	}
	return u, true
}

// RequireAdmin guards HTML pages: anonymous users go to /login, others get 403.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies("sid") == "" {
			return c.Redirect("/login")
		}
		u, ok := sessionAdmin(c, auth)
		if !ok {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdminAPI accepts the operator token or an admin session. An empty
// token disables token access.
func RequireAdminAPI(auth *services.AuthService, token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if got := c.Get(AdminTokenHeader); token != "" && got != "" {
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1 {
				return c.Next()
			}
			applog.Security(c, "access.denied.admin_token", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		if u, ok := sessionAdmin(c, auth); ok {
			c.Locals("user", u)
			return c.Next()
		}
		applog.Security(c, "access.denied.admin", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
}
