package httpapi

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed index.html
var dashboardHTML []byte

// RegisterDashboard serves the embedded single-page dashboard.
func RegisterDashboard(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(dashboardHTML)
	})
}
