package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/climashield/climashield/internal/climate"
	"github.com/climashield/climashield/internal/dataset"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *climate.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/areas", func(c *fiber.Ctx) error {
		areas, err := service.Areas()
		if err != nil {
			return loadFailure(err)
		}
		return c.JSON(fiber.Map{"areas": areas})
	})

	v1.Get("/analyze", func(c *fiber.Ctx) error {
		var q analyzeQuery
		q.Area = c.Query("area")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		analysis, err := service.Analyze(c.UserContext(), q.Area)
		if err != nil {
			if errors.Is(err, dataset.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no historical data for requested area")
			}
			return loadFailure(err)
		}

		return c.JSON(analysis)
	})

	v1.Get("/predictions", func(c *fiber.Ctx) error {
		predictions, warnings, err := service.Predictions()
		if err != nil {
			return loadFailure(err)
		}
		return c.JSON(fiber.Map{
			"predictions": predictions,
			"warnings":    warnings,
		})
	})
}

// analyzeQuery holds query parameters for the analyze endpoint.
type analyzeQuery struct {
	Area string `validate:"required"`
}

// loadFailure maps pipeline errors to user-visible responses. A source-data
// problem aborts the request; nothing partial is rendered.
func loadFailure(err error) error {
	var loadErr *dataset.LoadError
	if errors.As(err, &loadErr) {
		return fiber.NewError(fiber.StatusInternalServerError, loadErr.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "analysis failed: "+err.Error())
}
