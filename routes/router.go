package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/darkempire/vid/config"
	"github.com/darkempire/vid/controllers"
	"github.com/darkempire/vid/middleware"
	"github.com/darkempire/vid/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, db *gorm.DB, sessions *utils.SessionStore, fetcher controllers.Fetcher) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")

	authController := controllers.NewAuthController(db, sessions)
	videoController := controllers.NewVideoController(fetcher, cfg.UploadDir)
	adminController := controllers.NewAdminController(db)

	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})
	r.POST("/", videoController.Submit)

	r.GET("/videos", videoController.ListFiles)
	r.GET("/uploads/:filename", videoController.UploadedFile)

	r.GET("/register", func(c *gin.Context) {
		c.File("./static/register.html")
	})
	r.GET("/login", func(c *gin.Context) {
		c.File("./static/login.html")
	})

	authLimited := r.Group("")
	authLimited.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	authLimited.POST("/register", authController.Register)
	authLimited.POST("/login", authController.Login)

	r.GET("/logout", authController.Logout)

	admin := r.Group("/admin")
	admin.Use(middleware.SessionRequired(sessions))
	admin.GET("", adminController.List)
	admin.POST("", adminController.Mutate)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	return r
}
