package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"soukel/internal/auth"
	"soukel/internal/http/handlers"
	applog "soukel/internal/log"
	"soukel/internal/mailer"
	"soukel/internal/repos"
	"soukel/internal/services"
	"soukel/internal/store"
)

const adminEmail = "admin@soukel.ps"

type testApp struct {
	app *fiber.App
	log *applog.Logger
	db  *sqlx.DB
}

// newTestApp wires the full route table against a seeded in-memory database,
// without the rate limiter and csrf layers.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	log := applog.New(applog.LevelDebug, "test")
	st := store.NewSQLStore(db)

	provider := auth.NewLocalProvider(db, auth.NewMemoryTokenStore(), mailer.Noop{}, "test-secret", "http://localhost:3000")
	authSvc := services.NewAuthService(provider, adminEmail)
	t.Cleanup(authSvc.Close)

	engine := handlers.TemplateEngine("../../web/templates")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorBoundary(log),
	})
	app.Use(requestid.New())
	app.Use(handlers.RecoverPanics(log))

	deps := handlers.NewDeps(st, authSvc, log)
	deps.AdminHandler.Users = repos.NewUserRepo(db)
	deps.AdminHandler.AdminEmail = adminEmail
	authH := &handlers.AuthHandler{Auth: authSvc, Log: log}

	app.Get("/", deps.ListingHandler.Home)
	app.Get("/category/:slug", deps.ListingHandler.Category)
	app.Get("/ad/:id", deps.ListingHandler.Detail)
	app.Post("/ad/:id/favorite", deps.ListingHandler.Favorite)

	post := app.Group("/post", handlers.RequireUser(authSvc))
	post.Get("/", deps.PostHandler.CategoryStep)
	post.Get("/:slug", deps.PostHandler.TypeStep)
	post.Get("/:slug/:adtype", deps.PostHandler.Form)
	post.Post("/:slug/:adtype", deps.PostHandler.Create)

	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)
	app.Post("/logout", authH.Logout)
	app.Get("/verify", authH.VerifyEmail)
	app.Get("/auth/callback", authH.Callback)
	app.Get("/reset", authH.ResetForm)
	app.Post("/reset", authH.ResetRequest)
	app.Post("/reset/complete", authH.ResetComplete)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc, log))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/logs", deps.AdminHandler.Logs)
	app.Get("/api/v1/stats", handlers.RequireAdmin(authSvc, log), deps.AdminHandler.StatsJSON)

	return &testApp{app: app, log: log, db: db}
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func postForm(app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) (*http.Response, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return app.Test(req, int(5*time.Second/time.Millisecond))
}

// loginAs performs a form login and returns the sid cookie.
func loginAs(t *testing.T, app *fiber.App, email, password string) *http.Cookie {
	t.Helper()
	resp, err := postForm(app, "/login", url.Values{"email": {email}, "password": {password}})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("login as %s: status %d", email, resp.StatusCode)
	}
	sid := cookieNamed(resp, "sid")
	if sid == nil {
		t.Fatal("sid cookie missing after login")
	}
	return sid
}
