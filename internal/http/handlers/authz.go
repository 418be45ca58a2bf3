package handlers

import (
	"net/url"

	applog "soukel/internal/log"
	"soukel/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireUser enforces a signed-in user; otherwise redirect to login with a
// redirect parameter pointing back to the requested page.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login?redirect=" + url.QueryEscape(c.OriginalURL()))
		}
		u, err := auth.CurrentUser(c.UserContext(), sid)
		if err != nil || u == nil {
			return c.Redirect("/login?redirect=" + url.QueryEscape(c.OriginalURL()))
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService, log *applog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login?redirect=" + url.QueryEscape(c.OriginalURL()))
		}
		u, err := auth.CurrentUser(c.UserContext(), sid)
		if err != nil || !auth.HasPermission(u, services.PermAdminPanel) {
			log.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "غير مصرح لك بالدخول"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
