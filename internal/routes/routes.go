package routes

import (
	"time"

	"github.com/aaposadas/book-inventory-api/internal/config"
	"github.com/aaposadas/book-inventory-api/internal/handlers"
	"github.com/aaposadas/book-inventory-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	bookHandler *handlers.BookHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public. Stricter rate limit: 10 req/min per IP.
	// Refresh validates its own token; logout is idempotent and needs none.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Books require a JWT; identity is resolved before any handler runs
	books := api.Group("/books", middleware.JWTProtected(cfg), middleware.RequireIdentity(cfg))
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.Get)
	books.Post("/isbn/:isbn", bookHandler.CreateFromISBN)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)
}
