package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rloerke/puffins/config"
	"github.com/rloerke/puffins/controllers"
	"github.com/rloerke/puffins/middleware"
	"github.com/rloerke/puffins/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
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
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
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

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	feedController := controllers.NewFeedController(db)
	voteController := controllers.NewVoteController(db)
	userController := controllers.NewUserController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Feeds honor the viewer's block list when a token is presented, so
	// the public ones resolve identity opportunistically.
	feeds := api.Group("")
	feeds.Use(middleware.OptionalAuth())
	feeds.GET("/feed", feedController.Global)
	feeds.GET("/feed/popular", feedController.Popular)
	feeds.GET("/users/:id/posts", feedController.UserPosts)
	feeds.GET("/posts/:id", postController.GetPost)
	feeds.GET("/users/:id", authController.GetUserPublic)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.GET("/feed/following", feedController.Following)
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/:id/comments", postController.CreateComment)
	protected.POST("/posts/:id/upvote", voteController.Upvote)
	protected.POST("/posts/:id/downvote", voteController.Downvote)
	protected.POST("/posts/:id/react", voteController.React)
	protected.POST("/follow", userController.Follow)
	protected.POST("/block", userController.Block)
	protected.POST("/unblock", userController.Unblock)
	protected.GET("/blocked", userController.Blocked)
	protected.PATCH("/users/:id/rank", userController.SetRank)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
