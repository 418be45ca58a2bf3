package handlers

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "soukel/internal/log"
)

// ErrorBoundary is the app-wide ErrorHandler: unexpected errors get a
// correlation id, a log entry, and the Arabic fallback page. Internals never
// reach the user.
func ErrorBoundary(log *applog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		errID := fmt.Sprintf("ERR_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
		log.Error(c, "server.error", err, map[string]any{"error_id": errID})
		if rerr := c.Status(fiber.StatusInternalServerError).Render("fallback", fiber.Map{
			"ErrorID": errID,
			"Retry":   c.OriginalURL(),
		}); rerr != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("حدث خطأ غير متوقع. حاول مرة أخرى. (" + errID + ")")
		}
		return nil
	}
}

// RecoverPanics converts a handler panic into an internal error with the stack
// recorded, leaving the rendering to ErrorBoundary.
func RecoverPanics(log *applog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c, "server.panic", fmt.Errorf("%v", r), map[string]any{"stack": string(debug.Stack())})
				err = fiber.ErrInternalServerError
			}
		}()
		return c.Next()
	}
}
