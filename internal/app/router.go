package app

import (
	"skypath_backend/docs"
	"skypath_backend/internal/config"
	"skypath_backend/internal/middleware"
	"skypath_backend/internal/service"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// multipart 边界与元数据字段的余量
const uploadBodySlack int64 = 1 << 20

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	a.registerUserRoutes(authGroup, c)

	// 3. 管理员接口
	a.registerAdminRoutes(router, c, cfg)

	if local, ok := a.Storage.Provider.(*service.LocalStorageProvider); ok {
		router.Static("/uploads", local.Config.LocalPath)
	}

	router.NoRoute(func(ctx *gin.Context) {
		util.NotFound(ctx, "Route not found")
	})
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("", c.health.Index)
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
		}

		videos := public.Group("/videos")
		{
			videos.GET("", c.video.ListVideos)
			videos.GET("/search", c.video.SearchVideos)
			videos.GET("/:id", c.video.GetVideo)
		}
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.PUT("/videos/:id/progress", c.video.UpdateProgress)

	// 用户资料与成绩
	users := rg.Group("/users")
	{
		users.GET("/me", c.user.GetMe)
		users.PUT("/profile", c.user.UpdateProfile)
		users.PUT("/password", c.user.ChangePassword)
		users.PUT("/scores", c.user.UpdateScores)

		users.POST("/score-history", c.scoreHistory.AddScoreHistory)
		users.GET("/score-history", c.scoreHistory.ListScoreHistory)
		users.DELETE("/score-history/:id", c.scoreHistory.DeleteScoreHistory)
	}

	rg.GET("/recommendations", c.recommendation.GetRecommendations)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/videos")
	admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.Admin())
	{
		admin.POST("/upload", middleware.BodyLimit(util.MaxVideoSize+uploadBodySlack), c.video.UploadVideo)
	}
}
