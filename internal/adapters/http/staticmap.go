package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// StaticMapHandler proxies GET /api/static-map?lat=&lon=&w=&h=&z= to the map
// providers. Parameters are forwarded as given; the provider credential never
// leaves the server.
func StaticMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Query values alias the request buffer; the request outlives the
		// handler in span attributes and log records.
		req := domain.MapImageRequest{
			Latitude:  utils.CopyString(c.Query("lat")),
			Longitude: utils.CopyString(c.Query("lon")),
			Width:     utils.CopyString(c.Query("w")),
			Height:    utils.CopyString(c.Query("h")),
			Zoom:      utils.CopyString(c.Query("z")),
		}

		img, err := deps.StaticMaps.GetMapImage(c.UserContext(), req)
		if err != nil {
			return writeMapError(c, err)
		}

		c.Set(fiber.HeaderContentType, img.ContentType)
		c.Set(fiber.HeaderCacheControl, domain.MapCacheControl)
		return c.Send(img.Bytes)
	}
}
