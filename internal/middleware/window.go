package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/internal/utils"
	"gorm.io/gorm"
)

// ApplicationWindow short-circuits submission and edit requests while the
// application window is closed. Evaluated lazily per request; there is no
// background timer.
func ApplicationWindow(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		closed, err := services.IsClosedNow(db)
		if err != nil {
			return err
		}
		if closed {
			return utils.ErrorResponse(c,
				"Applications are currently closed", fiber.StatusForbidden, "portal.window.closed")
		}
		return c.Next()
	}
}
