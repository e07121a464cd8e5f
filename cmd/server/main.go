package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/amohooo/cv-app/docs"
	"github.com/amohooo/cv-app/internal/auth"
	"github.com/amohooo/cv-app/internal/cache"
	"github.com/amohooo/cv-app/internal/config"
	"github.com/amohooo/cv-app/internal/db"
	"github.com/amohooo/cv-app/internal/handler"
	"github.com/amohooo/cv-app/internal/model"
	"github.com/amohooo/cv-app/internal/repository"
	"github.com/amohooo/cv-app/internal/router"
	"github.com/amohooo/cv-app/internal/service"
)

// @title CV Content API
// @version 1.0
// @description Content management API for pages, sections and cards with admin ownership and JWT authentication.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Card{},
			&model.Section{},
			&model.Page{},
			&model.Admin{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(gormDB)
	pageRepo := repository.NewPageRepository(gormDB)
	sectionRepo := repository.NewSectionRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	assembler := service.NewPageAssembler(pageRepo, cacheClient)
	authService := service.NewAuthService(adminRepo, jwtService, tokenStore)
	pageService := service.NewPageService(pageRepo, assembler)
	sectionService := service.NewSectionService(sectionRepo, pageRepo, assembler)
	cardService := service.NewCardService(cardRepo, sectionRepo, pageRepo, assembler)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	pageHandler := handler.NewPageHandler(pageService)
	sectionHandler := handler.NewSectionHandler(sectionService)
	cardHandler := handler.NewCardHandler(cardService)
	uploadHandler := handler.NewUploadHandler(cfg.UploadDir)

	// Register routes
	router.Register(
		e,
		cfg,
		adminRepo,
		authHandler,
		pageHandler,
		sectionHandler,
		cardHandler,
		uploadHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
