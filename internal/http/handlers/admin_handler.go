package handlers

import (
	"os"

	"soukel/internal/domain"
	"soukel/internal/format"
	applog "soukel/internal/log"
	"soukel/internal/repos"
	"soukel/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the data admin panel: store stats, the logger's ring
// buffer, and the latest ads. Users is only set when the sqlite store is in
// use; the panel hides the user table otherwise.
type AdminHandler struct {
	Listings   *services.ListingService
	Log        *applog.Logger
	Users      *repos.UserRepo
	AdminEmail string
	DBPath     string
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Listings.Stats()
	if err != nil {
		h.Log.Error(c, "admin.stats.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	latest, err := h.Listings.List(domain.Filters{}, 1, 10)
	if err != nil {
		h.Log.Error(c, "admin.ads.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	var users []domain.User
	if h.Users != nil {
		if users, err = h.Users.ListPublic(h.AdminEmail); err != nil {
			h.Log.Error(c, "admin.users.fail", err, nil)
		}
	}
	// Shown only for file-backed databases; :memory: has no size.
	dbSize := ""
	if fi, err := os.Stat(h.DBPath); h.DBPath != "" && err == nil {
		dbSize = format.FileSize(fi.Size())
	}
	return render(c, "admin_dashboard", fiber.Map{
		"Stats":  stats,
		"Latest": latest.Ads,
		"Logs":   h.Log.RecentLogs(50),
		"Users":  users,
		"DBSize": dbSize,
	})
}

// GET /admin/logs
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	return render(c, "admin_logs", fiber.Map{"Logs": h.Log.RecentLogs(100)})
}

// GET /api/v1/stats
func (h *AdminHandler) StatsJSON(c *fiber.Ctx) error {
	stats, err := h.Listings.Stats()
	if err != nil {
		h.Log.Error(c, "admin.stats.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "stats unavailable"})
	}
	return c.JSON(stats)
}
