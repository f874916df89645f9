package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"lumina/internal/assist"
	"lumina/internal/config"
	"lumina/internal/domain"
	"lumina/internal/http/handlers"
	applog "lumina/internal/log"
	"lumina/internal/localcache"
	"lumina/internal/repos"
	"lumina/internal/state"
)

func main() {
	cfg := config.Load()

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

	cache, err := localcache.Open(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}

	opts := state.Options{PaymentDelay: time.Duration(cfg.PaymentDelayMs) * time.Millisecond}

	// A store that fails to open degrades to an empty, non-durable session
	// with one visible error, instead of refusing to start.
	var st *state.Store
	if db, err := repos.OpenDB(cfg.DBDSN); err == nil {
		st = state.New(db, cache, opts)
		st.Load()
	} else {
		log.Printf("[store] open failed, running degraded: %v", err)
		mem, memErr := repos.OpenDB(":memory:")
		if memErr != nil {
			log.Fatal(memErr)
		}
		st = state.New(mem, cache, opts)
		st.AddNotification(domain.NotifyError, "Failed to load data from database.")
	}

	ai := assist.New(cfg.AIAPIKey, cfg.AIModel, cfg.AIEndpoint)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(st, ai)

	// Catalog
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/:id", deps.ProductHandler.Detail)
	app.Get("/products/:id/pitch", deps.ProductHandler.Pitch)
	app.Post("/products/:id/reviews", deps.ProductHandler.Review)

	// Cart & checkout
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Patch("/cart", deps.CartHandler.UpdateQuantity)
	app.Delete("/cart/:id", deps.CartHandler.Remove)
	app.Delete("/cart", deps.CartHandler.Clear)
	app.Post("/cart/open", deps.CartHandler.SetOpen)
	app.Post("/checkout", deps.OrderHandler.Checkout)
	app.Post("/coupons/validate", deps.OrderHandler.ValidateCoupon)

	// Auth (login throttled like any public credential endpoint)
	app.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts"})
		},
	}), deps.AuthHandler.Login)
	app.Post("/auth/register", deps.AuthHandler.Register)
	app.Post("/auth/logout", deps.AuthHandler.Logout)
	app.Get("/auth/me", deps.AuthHandler.Me)

	// Profile
	profile := app.Group("/profile", handlers.RequireUser(st))
	profile.Get("/wishlist", deps.UserHandler.Wishlist)
	profile.Post("/wishlist", deps.UserHandler.ToggleWishlist)
	profile.Post("/addresses", deps.UserHandler.AddAddress)
	profile.Delete("/addresses/:id", deps.UserHandler.RemoveAddress)
	profile.Get("/orders", deps.OrderHandler.History)

	// Orders
	app.Get("/orders/:id", deps.OrderHandler.Detail)

	// Notifications
	app.Get("/notifications", deps.NotificationHandler.List)
	app.Delete("/notifications/:id", deps.NotificationHandler.Dismiss)

	// Assistant chat
	app.Post("/assist/chat", deps.AssistHandler.Chat)

	// Admin back-office (advisory gating; see authz.go)
	admin := app.Group("/admin", handlers.RequireAdmin(st))
	admin.Get("/orders", deps.OrderHandler.List)
	admin.Post("/orders/:id/status", deps.OrderHandler.UpdateStatus)
	admin.Post("/orders/:id/refund", deps.OrderHandler.Refund)
	admin.Get("/users", deps.UserHandler.List)
	admin.Post("/users", deps.UserHandler.Create)
	admin.Put("/users/:id", deps.UserHandler.Update)
	admin.Delete("/users/:id", deps.UserHandler.Delete)
	admin.Post("/products", deps.ProductHandler.Create)
	admin.Put("/products/:id", deps.ProductHandler.Update)
	admin.Delete("/products/:id", deps.ProductHandler.Delete)
	admin.Post("/products/describe", deps.ProductHandler.Describe)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
