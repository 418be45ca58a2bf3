package handlers

import (
	"errors"
	"time"

	"soukel/internal/domain"
	"soukel/internal/format"
	applog "soukel/internal/log"
	"soukel/internal/services"
	"soukel/internal/store"
	"soukel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Listings *services.ListingService
	Log      *applog.Logger
}

func (h *ListingHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Listings.Categories()
	if err != nil {
		h.Log.Error(c, "home.categories.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	featured, err := h.Listings.List(domain.Filters{Featured: true}, 1, 6)
	if err != nil {
		h.Log.Error(c, "home.featured.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "home", fiber.Map{"Categories": cats, "Featured": featured.Ads})
}

// categoryBySlug resolves a slug against the active category set.
func (h *ListingHandler) categoryBySlug(slug string) (*domain.Category, error) {
	cats, err := h.Listings.Categories()
	if err != nil {
		return nil, err
	}
	for i := range cats {
		if cats[i].Slug == slug {
			return &cats[i], nil
		}
	}
	return nil, nil
}

// GET /category/:slug
func (h *ListingHandler) Category(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "القسم غير موجود"})
	}
	cat, err := h.categoryBySlug(slug)
	if err != nil {
		h.Log.Error(c, "category.lookup.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	if cat == nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "القسم غير موجود"})
	}

	f := domain.Filters{
		CategoryID: cat.ID,
		City:       c.Query("city"),
		Query:      c.Query("q"),
		Featured:   c.Query("featured") == "1",
		Urgent:     c.Query("urgent") == "1",
	}
	page := validate.Page(c.Query("page"))
	start := time.Now()
	result, err := h.Listings.List(f, page, 12)
	if err != nil {
		h.Log.Error(c, "category.list.fail", err, map[string]any{"category": cat.ID})
		return fiber.ErrInternalServerError
	}
	h.Log.Duration("ads.list", time.Since(start), map[string]any{"category": cat.ID, "total": result.Total})
	return render(c, "category", fiber.Map{
		"Category": cat,
		"Page":     result,
		"City":     f.City,
		"Q":        f.Query,
		"NextPage": page + 1,
	})
}

// GET /ad/:id — every view increments the ad's counter.
func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "الإعلان غير موجود"})
	}
	ad, err := h.Listings.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "الإعلان غير موجود"})
		}
		h.Log.Error(c, "ad.get.fail", err, map[string]any{"ad_id": id})
		return fiber.ErrInternalServerError
	}
	return render(c, "ad", fiber.Map{
		"Ad":    ad,
		"Price": format.Currency(ad.Price, ad.Currency),
		"Phone": format.NormalizePhone(ad.ContactPhone),
	})
}

// POST /ad/:id/favorite
func (h *ListingHandler) Favorite(c *fiber.Ctx) error {
	h.Log.APICall("api.ad.favorite", c.Method(), c.Path(), nil)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		h.Log.APIResponse("api.ad.favorite", 404, nil)
		return c.Status(404).JSON(fiber.Map{"error": "الإعلان غير موجود"})
	}
	fav, err := h.Listings.ToggleFavorite(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.Log.APIResponse("api.ad.favorite", 404, map[string]any{"ad_id": id})
			return c.Status(404).JSON(fiber.Map{"error": "الإعلان غير موجود"})
		}
		h.Log.Error(c, "ad.favorite.fail", err, map[string]any{"ad_id": id})
		return fiber.ErrInternalServerError
	}
	h.Log.Audit(c, "ad.favorite.toggle", map[string]any{"ad_id": id, "favorited": fav})
	h.Log.APIResponse("api.ad.favorite", 200, map[string]any{"ad_id": id})
	return c.JSON(fiber.Map{"favorited": fav})
}
