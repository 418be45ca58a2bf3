package handlers

import (
	"strings"
	"time"

	"soukel/internal/auth"
	applog "soukel/internal/log"
	"soukel/internal/services"
	"soukel/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const rememberCookie = "remember_email"

type AuthHandler struct {
	Auth *services.AuthService
	Log  *applog.Logger
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// safeRedirect only allows same-site paths from the redirect parameter.
func safeRedirect(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/"
	}
	return p
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return render(c, "login", fiber.Map{
		"Err":       "",
		"Email":     c.Cookies(rememberCookie),
		"Redirect":  safeRedirect(c.Query("redirect")),
		"CSRFToken": tok,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	redirect := safeRedirect(c.FormValue("redirect"))

	loginErr := func(status int, msg string) error {
		return c.Status(status).Render("login", fiber.Map{
			"Err": msg, "Email": email, "Redirect": redirect, "CSRFToken": c.Cookies("csrf_"),
		})
	}

	if _, ok := validate.Email(email); !ok {
		h.Log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return loginErr(401, "البريد الإلكتروني أو كلمة المرور غير صحيحة")
	}

	_, err := h.Auth.Login(c.UserContext(), sid, email, pass)
	if err != nil {
		status := 401
		if err == services.ErrLockedOut {
			status = 429
		}
		h.Log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return loginErr(status, err.Error())
	}

	// Remember the email for prefill; survives logout.
	if c.FormValue("remember") == "1" {
		c.Cookie(&fiber.Cookie{
			Name: rememberCookie, Value: email, Path: "/",
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(90 * 24 * time.Hour),
		})
	}

	h.Log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect(redirect)
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return render(c, "signup", fiber.Map{"Err": "", "CSRFToken": tok})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	email := c.FormValue("email")
	name := c.FormValue("name")
	pass := c.FormValue("password")
	phone := c.FormValue("phone")

	signupErr := func(msg string) error {
		return c.Status(400).Render("signup", fiber.Map{
			"Err": msg, "Email": email, "Name": name, "Phone": phone, "CSRFToken": c.Cookies("csrf_"),
		})
	}

	if _, ok := validate.Email(email); !ok {
		return signupErr("صيغة البريد الإلكتروني غير صحيحة")
	}
	if _, ok := validate.Name(name); !ok {
		return signupErr("يرجى إدخال الاسم")
	}
	if !validate.Password(pass) {
		return signupErr("كلمة المرور يجب أن تكون 8 أحرف على الأقل وتحتوي حروفاً وأرقاماً")
	}
	if phone != "" {
		var ok bool
		if phone, ok = validate.Phone(phone); !ok {
			return signupErr("رقم الهاتف غير صحيح، مثال: 0591234567")
		}
	}

	u, err := h.Auth.Signup(c.UserContext(), auth.SignUpInput{
		Email:    email,
		Password: pass,
		Name:     name,
		Phone:    phone,
		City:     c.FormValue("city"),
	}, c.FormValue("terms") == "1")
	if err != nil {
		h.Log.Security(c, "auth.signup.fail", map[string]any{"email": email})
		return signupErr(err.Error())
	}

	h.Log.Audit(c, "auth.signup.success", map[string]any{"email": email, "user_id": u.ID})
	return render(c, "signup_done", fiber.Map{"Email": email})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(c.UserContext(), sid)
	// Expire the session cookie; the remembered email cookie stays.
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	h.Log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}

// GET /verify?token=...
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(400).Render("verify", fiber.Map{"Err": "رابط التأكيد غير صالح"})
	}
	if err := h.Auth.VerifyEmail(c.UserContext(), token); err != nil {
		h.Log.Security(c, "auth.verify.fail", nil)
		return c.Status(400).Render("verify", fiber.Map{"Err": err.Error()})
	}
	h.Log.Audit(c, "auth.verify.success", nil)
	return render(c, "verify", fiber.Map{"OK": true})
}

// GET /auth/callback?token=...&redirect=... — lands here after an external
// identity redirect; the token is exchanged for a local session.
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	sid := ensureSID(c)
	token := c.Query("token")
	redirect := safeRedirect(c.Query("redirect"))

	if token == "" {
		return c.Redirect("/login?redirect=" + redirect)
	}
	_, err := h.Auth.ExchangeCallbackToken(c.UserContext(), sid, token)
	if err != nil {
		h.Log.Security(c, "auth.callback.fail", nil)
		return c.Status(401).Render("login", fiber.Map{
			"Err": "تعذر إكمال تسجيل الدخول، حاول مرة أخرى", "Redirect": redirect, "CSRFToken": c.Cookies("csrf_"),
		})
	}
	h.Log.Audit(c, "auth.callback.success", nil)
	return c.Redirect(redirect)
}

// GET /reset — email request form, or the new-password form when a token is
// present in the link.
func (h *AuthHandler) ResetForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return render(c, "reset", fiber.Map{"Token": c.Query("token"), "CSRFToken": tok})
}

// POST /reset — requests the reset mail. Always answers the same way.
func (h *AuthHandler) ResetRequest(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if _, ok := validate.Email(email); !ok {
		return c.Status(400).Render("reset", fiber.Map{"Err": "صيغة البريد الإلكتروني غير صحيحة", "CSRFToken": c.Cookies("csrf_")})
	}
	if err := h.Auth.ResetPassword(c.UserContext(), email); err != nil {
		h.Log.Error(c, "auth.reset.request.fail", err, nil)
	}
	return render(c, "reset", fiber.Map{"Sent": true})
}

// POST /reset/complete
func (h *AuthHandler) ResetComplete(c *fiber.Ctx) error {
	token := c.FormValue("token")
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		return c.Status(400).Render("reset", fiber.Map{
			"Token": token, "Err": "كلمة المرور يجب أن تكون 8 أحرف على الأقل وتحتوي حروفاً وأرقاماً", "CSRFToken": c.Cookies("csrf_"),
		})
	}
	if err := h.Auth.CompleteReset(c.UserContext(), token, pass); err != nil {
		h.Log.Security(c, "auth.reset.complete.fail", nil)
		return c.Status(400).Render("reset", fiber.Map{"Token": token, "Err": err.Error(), "CSRFToken": c.Cookies("csrf_")})
	}
	h.Log.Audit(c, "auth.reset.complete", nil)
	return render(c, "login", fiber.Map{"Err": "", "Info": "تم تغيير كلمة المرور، يمكنك تسجيل الدخول الآن", "CSRFToken": c.Cookies("csrf_")})
}
