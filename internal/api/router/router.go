package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"police-personnel/config"
	"police-personnel/internal/api/handler"
	"police-personnel/internal/api/middleware"
	"police-personnel/internal/auth"
	"police-personnel/pkg/response"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
	// allowance for multipart framing on top of the upload cap
	bodySlack = 1 << 20
)

// Setup builds the gin engine. db is only used by the health check and may be nil.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	resolver middleware.SessionResolver,
	limiter middleware.RateLimiter,
	db *gorm.DB,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Import.MaxUploadBytes() + bodySlack))

	r.GET("/health", healthCheck(db))

	loginLimit := middleware.RateLimit(limiter, loginRateLimit, loginRateWindow, logger)
	sessionAuth := middleware.SessionAuth(resolver, cfg.Auth.Cookie.Name)

	v1 := r.Group("/api/v1")
	{
		// public
		public := v1.Group("/auth")
		{
			public.POST("/login", loginLimit, h.Auth.Login)
			public.POST("/register", loginLimit, h.Auth.Register)
			public.GET("/guard", h.Auth.Guard)
		}

		authorized := v1.Group("")
		authorized.Use(sessionAuth, middleware.RequireRole(auth.RoleUser))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/session", h.Auth.Session)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			authorized.GET("/pos-code", h.PosCode.ListPosCodes)

			personnel := authorized.Group("/personnel")
			{
				hr := middleware.RequireRole(auth.RoleHR)
				admin := middleware.RequireRole(auth.RoleAdmin)

				personnel.GET("", h.Personnel.ListPersonnel)
				personnel.GET("/export", h.Export.ExportPersonnel)
				personnel.GET("/import/template", hr, h.Import.Template)
				personnel.POST("/import/preview", hr, h.Import.Preview)
				personnel.POST("/import/commit", hr, h.Import.Commit)
				personnel.GET("/:id", h.Personnel.GetPersonnel)
				personnel.POST("", hr, h.Personnel.CreatePersonnel)
				personnel.PUT("/:id", hr, h.Personnel.UpdatePersonnel)
				personnel.DELETE("/:id", admin, h.Personnel.DeletePersonnel)
			}

			users := authorized.Group("/users", middleware.RequireRole(auth.RoleAdmin))
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("", h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.DELETE("/:id", h.User.DeleteUser)
			}
		}
	}

	return r
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "database unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
