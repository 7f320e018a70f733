package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"

	"github.com/lumaxtec/site-backend/config"
	"github.com/lumaxtec/site-backend/migrations"
	"github.com/lumaxtec/site-backend/pkg/apperrors"
	"github.com/lumaxtec/site-backend/pkg/logger"
	"github.com/lumaxtec/site-backend/pkg/mailer"
	"github.com/lumaxtec/site-backend/pkg/storage"
	"github.com/lumaxtec/site-backend/routes"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: site-backend [server|migrate]")
		os.Exit(1)
	}

	config.InitConfig()
	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "site-backend",
		Version:     viper.GetString("VERSION"),
	})
	log := logger.Get().WithComponent("main")

	db, err := config.NewDB()
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "server":
		startServer(db)
	case "migrate":
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set migration dialect", err)
		}
		if err := goose.Up(db.DB, "."); err != nil {
			log.Fatal("Failed to run migrations", err)
		}
		log.Info("Migrations applied")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func startServer(db *sqlx.DB) {
	log := logger.Get().WithComponent("main")
	ctx := context.Background()

	deps := routes.Deps{
		DB:    db,
		Redis: config.NewRedis(),
	}

	// Mail and asset storage are optional in local development.
	if m, err := mailer.NewMailer(ctx); err != nil {
		log.Warn("Mailer disabled", logger.Err(err))
	} else {
		deps.Notifier = m
	}
	if s, err := storage.NewClient(ctx); err != nil {
		log.Warn("Asset storage disabled", logger.Err(err))
	} else {
		deps.Uploader = s
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(logger.Get())

	e.Use(logger.RequestLoggerMiddleware(logger.Get()))
	e.Use(logger.RecoveryMiddleware(logger.Get()))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentLength},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e, deps)

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("Starting server", logger.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server stopped", err)
	}
}

func allowedOrigins() []string {
	if origins := viper.GetStringSlice("CORS_ALLOW_ORIGINS"); len(origins) > 0 {
		return origins
	}
	return []string{"http://localhost:3000"}
}
