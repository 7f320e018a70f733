package routes

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/lumaxtec/site-backend/domain/career"
	"github.com/lumaxtec/site-backend/domain/contact"
	"github.com/lumaxtec/site-backend/domain/faq"
	"github.com/lumaxtec/site-backend/domain/health"
	"github.com/lumaxtec/site-backend/domain/order"
	"github.com/lumaxtec/site-backend/domain/product"
	"github.com/lumaxtec/site-backend/domain/upload"
	"github.com/lumaxtec/site-backend/domain/user"
	"github.com/lumaxtec/site-backend/middleware"
)

// Deps carries the shared dependencies the handlers are built on.
type Deps struct {
	DB       *sqlx.DB
	Redis    *redis.Client
	Notifier contact.Notifier
	Uploader upload.Uploader
}

// RegisterRoutes wires all endpoints onto e.
//
// Public routes serve the website. Staff routes require a token with the
// admin or mitarbeiter role, account management is admin only.
func RegisterRoutes(e *echo.Echo, deps Deps) {
	productHandler := product.NewHandler(deps.DB, viper.GetString("CATALOG_REMOTE_URL"))
	careerHandler := career.NewHandler(deps.DB)
	faqHandler := faq.NewHandler(deps.DB)
	orderHandler := order.NewHandler(deps.DB)
	contactHandler := contact.NewHandler(deps.DB, deps.Notifier)
	userHandler := user.NewHandler(deps.DB)
	uploadHandler := upload.NewHandler(deps.Uploader)
	healthHandler := health.NewHandler(deps.DB)

	// Health probes
	e.GET("/health", healthHandler.ReadinessHandler)
	e.GET("/health/live", healthHandler.LivenessHandler)
	e.GET("/health/ready", healthHandler.ReadinessHandler)
	e.GET("/health/stats", healthHandler.StatsHandler, middleware.JWTMiddleware, middleware.RequireRole(middleware.RoleAdmin))

	// Public site content
	e.GET("/products", productHandler.ListHandler)
	e.GET("/careers", careerHandler.ListHandler)
	e.GET("/faq", faqHandler.ListHandler)

	// Public intake, rate limited per client IP
	e.POST("/orders", orderHandler.CreateHandler, middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests: 10,
		Window:      time.Minute,
		KeyPrefix:   "ratelimit:orders",
		Redis:       deps.Redis,
	}))
	e.POST("/contact", contactHandler.SubmitHandler, middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests: 5,
		Window:      time.Minute,
		KeyPrefix:   "ratelimit:contact",
		Redis:       deps.Redis,
	}))

	// Accounts
	e.POST("/user/login", userHandler.LoginHandler, middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests: 10,
		Window:      time.Minute,
		KeyPrefix:   "ratelimit:login",
		Redis:       deps.Redis,
	}))
	e.PUT("/user/change_password", userHandler.ChangePasswordHandler, middleware.JWTMiddleware)
	e.GET("/user", userHandler.ListUsersHandler, middleware.JWTMiddleware, middleware.RequireRole(middleware.RoleAdmin))
	e.POST("/user", userHandler.CreateUserHandler, middleware.JWTMiddleware, middleware.RequireRole(middleware.RoleAdmin))
	e.DELETE("/user/:id", userHandler.DeleteUserHandler, middleware.JWTMiddleware, middleware.RequireRole(middleware.RoleAdmin))

	// Content management (staff)
	staff := e.Group("/admin", middleware.JWTMiddleware, middleware.RequireStaff())

	staff.POST("/products", productHandler.SaveHandler)
	staff.DELETE("/products/:content_id", productHandler.DeleteHandler)
	staff.POST("/products/link", productHandler.LinkHandler)

	staff.GET("/careers", careerHandler.AdminListHandler)
	staff.POST("/careers", careerHandler.SaveHandler)
	staff.DELETE("/careers/:content_id", careerHandler.DeleteHandler)
	staff.POST("/careers/link", careerHandler.LinkHandler)

	staff.POST("/faq", faqHandler.SaveHandler)
	staff.DELETE("/faq/:content_id", faqHandler.DeleteHandler)
	staff.POST("/faq/link", faqHandler.LinkHandler)

	staff.GET("/orders", orderHandler.ListHandler)
	staff.GET("/orders/:id", orderHandler.GetHandler)
	staff.PUT("/orders/:id/status", orderHandler.UpdateStatusHandler)

	staff.GET("/contact", contactHandler.ListHandler)
	staff.PUT("/contact/:id/processed", contactHandler.MarkProcessedHandler)

	staff.POST("/uploads", uploadHandler.UploadHandler)
	staff.DELETE("/uploads", uploadHandler.DeleteHandler)
}
