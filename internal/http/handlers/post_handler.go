package handlers

import (
	"soukel/internal/domain"
	applog "soukel/internal/log"
	"soukel/internal/services"
	"soukel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// PostHandler drives the post-an-ad wizard: category -> transaction type ->
// details form -> create.
type PostHandler struct {
	Listings *services.ListingService
	Auth     *services.AuthService
	Log      *applog.Logger
}

// GET /post
func (h *PostHandler) CategoryStep(c *fiber.Ctx) error {
	cats, err := h.Listings.Categories()
	if err != nil {
		h.Log.Error(c, "post.categories.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "post_category", fiber.Map{"Categories": cats})
}

// GET /post/:slug — transaction type selection, driven by the static table.
func (h *PostHandler) TypeStep(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "القسم غير موجود"})
	}
	return render(c, "post_type", fiber.Map{
		"Slug":    slug,
		"Options": AdTypesFor(slug),
	})
}

// GET /post/:slug/:adtype
func (h *PostHandler) Form(c *fiber.Ctx) error {
	slug, okS := validate.Slug(c.Params("slug"))
	adType, okT := validate.AdType(c.Params("adtype"))
	if !okS || !okT {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "الصفحة غير موجودة"})
	}
	return render(c, "post_form", fiber.Map{"Slug": slug, "AdType": adType})
}

// POST /post/:slug/:adtype
func (h *PostHandler) Create(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if !h.Auth.HasPermission(u, services.PermPostAd) {
		h.Log.Security(c, "post.denied", map[string]any{"reason": "inactive_account"})
		return c.Status(403).Render("notfound", fiber.Map{"Message": "حسابك غير مفعل، لا يمكنك نشر إعلانات"})
	}

	slug, okS := validate.Slug(c.Params("slug"))
	adType, okT := validate.AdType(c.Params("adtype"))
	if !okS || !okT {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "الصفحة غير موجودة"})
	}

	formErr := func(msg string) error {
		return c.Status(400).Render("post_form", fiber.Map{"Slug": slug, "AdType": adType, "Err": msg, "CSRFToken": c.Cookies("csrf_")})
	}

	title, ok := validate.Title(c.FormValue("title"))
	if !ok {
		return formErr("يرجى إدخال عنوان صحيح للإعلان")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return formErr("السعر غير صحيح")
	}
	priceType, ok := validate.PriceType(c.FormValue("price_type"))
	if !ok {
		return formErr("نوع السعر غير صحيح")
	}
	cond, ok := validate.Condition(c.FormValue("condition"))
	if !ok {
		return formErr("حالة السلعة غير صحيحة")
	}
	phone := c.FormValue("contact_phone")
	if phone != "" {
		var okP bool
		if phone, okP = validate.Phone(phone); !okP {
			return formErr("رقم الهاتف غير صحيح، مثال: 0591234567")
		}
	}

	cats, err := h.Listings.Categories()
	if err != nil {
		h.Log.Error(c, "post.categories.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	var catID string
	for _, cat := range cats {
		if cat.Slug == slug {
			catID = cat.ID
			break
		}
	}
	if catID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "القسم غير موجود"})
	}

	ad, err := h.Listings.Create(domain.NewAd{
		UserID:       u.ID,
		Title:        title,
		Description:  c.FormValue("description"),
		CategoryID:   catID,
		Price:        price,
		PriceType:    priceType,
		City:         c.FormValue("city"),
		Region:       c.FormValue("region"),
		AdType:       adType,
		Condition:    cond,
		BusinessAd:   h.Auth.HasPermission(u, services.PermBusinessFeatures),
		ContactName:  u.Name,
		ContactPhone: phone,
	})
	if err != nil {
		h.Log.Error(c, "post.create.fail", err, nil)
		return fiber.ErrInternalServerError
	}

	h.Log.UserAction(u.ID, "post.create", map[string]any{"ad_id": ad.ID, "category": catID, "ad_type": adType})
	return c.Redirect("/ad/" + ad.ID)
}
