package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"soukel/internal/auth"
	"soukel/internal/config"
	"soukel/internal/http/handlers"
	applog "soukel/internal/log"
	"soukel/internal/mailer"
	"soukel/internal/repos"
	"soukel/internal/services"
	"soukel/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	appLog := applog.New(applog.ParseLevel(cfg.LogLevel), cfg.Env)

	// Listing store: in-memory mock for development, sqlite otherwise. The
	// auth provider always needs the database.
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	var st store.Store
	if cfg.MockData {
		log.Println("[store] MOCK_DATA enabled, serving seeded in-memory ads")
		st = store.NewMockStore(100*time.Millisecond, 500*time.Millisecond)
	} else {
		st = store.NewSQLStore(db)
	}

	// One-time auth tokens live in Redis when configured, memory otherwise.
	var tokens auth.TokenStore
	if cfg.RedisAddr != "" {
		rts, err := auth.NewRedisTokenStore(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		tokens = rts
	} else {
		tokens = auth.NewMemoryTokenStore()
	}

	var mail mailer.Mailer = mailer.Noop{}
	if cfg.SMTPHost != "" {
		mail = &mailer.SMTP{Host: cfg.SMTPHost, Port: cfg.SMTPPort, From: cfg.SMTPFrom, Pass: cfg.SMTPPass}
	}

	provider := auth.NewLocalProvider(db, tokens, mail, cfg.SessionSecret, cfg.BaseURL)
	authSvc := services.NewAuthService(provider, cfg.AdminEmail)
	defer authSvc.Close()
	authH := &handlers.AuthHandler{Auth: authSvc, Log: appLog}

	// Templates & app
	engine := handlers.TemplateEngine("./web/templates")
	engine.Reload(cfg.Env == "development")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorBoundary(appLog),
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.RecoverPanics(appLog))
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// The favorite toggle is a same-site JSON call
			return strings.HasSuffix(c.Path(), "/favorite")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			appLog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "فشل التحقق الأمني، يرجى تحديث الصفحة والمحاولة مجدداً"})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(st, authSvc, appLog)
	if !cfg.MockData {
		deps.AdminHandler.Users = repos.NewUserRepo(db)
	}
	deps.AdminHandler.AdminEmail = cfg.AdminEmail
	deps.AdminHandler.DBPath = cfg.DBDSN

	// Public pages
	app.Get("/", deps.ListingHandler.Home)
	app.Get("/category/:slug", deps.ListingHandler.Category)
	app.Get("/ad/:id", deps.ListingHandler.Detail)
	app.Post("/ad/:id/favorite", deps.ListingHandler.Favorite)

	// Post-ad wizard (signed-in users only)
	post := app.Group("/post", handlers.RequireUser(authSvc))
	post.Get("/", deps.PostHandler.CategoryStep)
	post.Get("/:slug", deps.PostHandler.TypeStep)
	post.Get("/:slug/:adtype", deps.PostHandler.Form)
	post.Post("/:slug/:adtype", deps.PostHandler.Create)

	// Auth routes (login throttled per IP on top of the service lockout)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			appLog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "محاولات كثيرة، حاول لاحقاً"})
		},
	}), authH.Login)
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)
	app.Post("/logout", authH.Logout)
	app.Get("/verify", authH.VerifyEmail)
	app.Get("/auth/callback", authH.Callback)
	app.Get("/reset", authH.ResetForm)
	app.Post("/reset", authH.ResetRequest)
	app.Post("/reset/complete", authH.ResetComplete)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc, appLog))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/logs", deps.AdminHandler.Logs)
	app.Get("/api/v1/stats", handlers.RequireAdmin(authSvc, appLog), deps.AdminHandler.StatsJSON)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "الصفحة غير موجودة"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
