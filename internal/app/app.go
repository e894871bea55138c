package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"skypath_backend/internal/config"
	"skypath_backend/internal/controller"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/service"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/configwatcher"
	"skypath_backend/pkg/database"
	"skypath_backend/pkg/logger"
	"skypath_backend/pkg/monitoring"
	"skypath_backend/pkg/security"
	"skypath_backend/pkg/tracing"
	"skypath_backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Storage         *service.StorageService
	rateLimiter     *security.RateLimiter
	tracerShutdown  func(context.Context) error
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	video        *repository.VideoRepository
	scoreHistory *repository.ScoreHistoryRepository
	progress     *repository.ProgressRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	video          *service.VideoService
	scoreHistory   *service.ScoreHistoryService
	recommendation *service.RecommendationService
}

type controllers struct {
	auth           *controller.AuthController
	user           *controller.UserController
	video          *controller.VideoController
	scoreHistory   *controller.ScoreHistoryController
	recommendation *controller.RecommendationController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		video:        repository.NewVideoRepository(db),
		scoreHistory: repository.NewScoreHistoryRepository(db),
		progress:     repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	return &services{
		auth:           service.NewAuthService(repos.user, cfg),
		user:           service.NewUserService(repos.user),
		video:          service.NewVideoService(repos.video, repos.progress, a.Storage),
		scoreHistory:   service.NewScoreHistoryService(repos.scoreHistory),
		recommendation: service.NewRecommendationService(repos.user, repos.video),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		user:           controller.NewUserController(s.user),
		video:          controller.NewVideoController(s.video),
		scoreHistory:   controller.NewScoreHistoryController(s.scoreHistory),
		recommendation: controller.NewRecommendationController(s.recommendation),
		health:         controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(logger.RequestID())
	router.Use(logger.GinLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c).Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		util.InternalServerError(c, "Internal server error", fmt.Errorf("%v", recovered))
		c.Abort()
	}))

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 用已建立的数据库连接和存储组装应用，测试中传入 SQLite 与本地存储
func New(cfg *config.Config, db *gorm.DB, storage *service.StorageService) *App {
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	validation.RegisterGinValidators()
	monitoring.Init()

	app := &App{
		Config:      cfg,
		DB:          db,
		Storage:     storage,
		rateLimiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, rateWindow(cfg)),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.ApplyConfig)
	app.RegisterConfigCallback(func(c *config.Config) {
		app.rateLimiter.Update(c.RateLimit.MaxRequests, rateWindow(c))
	})

	return app
}

// NewApp 连接数据库、执行迁移、准备存储并初始化追踪
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.JWT.Secret == config.InsecureJWTSecret {
		logger.Log.Warn("JWT_SECRET is not set, using the insecure development secret")
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}, nil
	}

	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storage.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("prepare storage: %w", err)
	}

	shutdown, err := tracing.InitTracer(&cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	app := New(cfg, db, storage)
	app.tracerShutdown = shutdown
	return app, nil
}

func rateWindow(cfg *config.Config) time.Duration {
	return time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
}

func (a *App) reload(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Configuration reloaded", zap.String("file", a.Config.ConfigFile))
}

// Run 启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅关闭
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.Config.ConfigFile != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, configwatcher.DefaultDebounce, a.reload); err != nil {
				logger.Log.Warn("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port), zap.String("mode", a.Config.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	return err
}

// Close 释放限流器、追踪与数据库连接
func (a *App) Close(ctx context.Context) {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
