package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// ListGalleryHandler handles GET /api/gallery?sort=&offset=&limit=.
// Without sort the file order is kept; sort=date is newest first and
// sort=date_asc oldest first.
func ListGalleryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var (
			items []domain.GalleryItem
			err   error
		)
		switch c.Query("sort") {
		case "":
			items, err = deps.Gallery.List(ctx)
		case "date":
			items, err = deps.Gallery.ListByDate(ctx, true)
		case "date_asc":
			items, err = deps.Gallery.ListByDate(ctx, false)
		default:
			return errBadRequest(c, "sort must be date or date_asc")
		}
		if err != nil {
			return errInternal(c, err)
		}

		page, pg := paginate(c, items, 100, 500)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GalleryMarkersHandler handles GET /api/gallery/markers, the feed the
// interactive map widget pins from.
func GalleryMarkersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		set, err := deps.Gallery.Markers(c.UserContext())
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(set)
	}
}
