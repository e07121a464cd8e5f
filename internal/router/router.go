package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/amohooo/cv-app/internal/auth"
	"github.com/amohooo/cv-app/internal/config"
	"github.com/amohooo/cv-app/internal/handler"
	"github.com/amohooo/cv-app/internal/repository"
)

// Register wires routes and middleware. Page reads are public; everything
// that mutates content or touches accounts sits behind the JWT group,
// which also re-reads the admin row on every request.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	adminRepo repository.AdminRepository,
	authHandler *handler.AuthHandler,
	pageHandler *handler.PageHandler,
	sectionHandler *handler.SectionHandler,
	cardHandler *handler.CardHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded files are public once stored.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public page reads
	api.GET("/pages", pageHandler.List)
	api.GET("/pages/slug/:slug", pageHandler.GetBySlug)
	api.GET("/pages/:id", pageHandler.GetByID)

	// Secured routes: JWT validation, then the admin row is loaded so the
	// current role and active flag apply, not the ones baked into the token.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), auth.LoadAdmin(adminRepo))

	// Auth and admin management
	secured.GET("/auth/me", authHandler.Me)
	secured.GET("/auth/check", authHandler.Check)
	secured.POST("/auth/change-password", authHandler.ChangePassword)
	secured.POST("/auth/register-admin", authHandler.RegisterAdmin)
	secured.GET("/auth/admins", authHandler.ListAdmins)
	secured.PUT("/auth/admins/:id", authHandler.UpdateAdmin)
	secured.DELETE("/auth/admins/:id", authHandler.DeleteAdmin)

	// Page mutations
	secured.POST("/pages", pageHandler.Create)
	secured.PUT("/pages/:id", pageHandler.Update)
	secured.DELETE("/pages/:id", pageHandler.Delete)

	// Section routes
	secured.GET("/sections/page/:pageId", sectionHandler.ListByPage)
	secured.POST("/sections", sectionHandler.Create)
	secured.PUT("/sections/:id", sectionHandler.Update)
	secured.DELETE("/sections/:id", sectionHandler.Delete)

	// Card routes
	secured.GET("/cards/section/:sectionId", cardHandler.ListBySection)
	secured.POST("/cards", cardHandler.Create)
	secured.PUT("/cards/:id", cardHandler.Update)
	secured.DELETE("/cards/:id", cardHandler.Delete)

	// Upload
	secured.POST("/upload", uploadHandler.Upload)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
