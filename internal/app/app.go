package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"risk_assessment_backend/internal/config"
	"risk_assessment_backend/internal/controller"
	"risk_assessment_backend/internal/middleware"
	"risk_assessment_backend/internal/repository"
	"risk_assessment_backend/internal/service"
	"risk_assessment_backend/internal/util"
	"risk_assessment_backend/pkg/configwatcher"
	"risk_assessment_backend/pkg/database"
	"risk_assessment_backend/pkg/logger"
	"risk_assessment_backend/pkg/monitoring"
	"risk_assessment_backend/pkg/observability"
	"risk_assessment_backend/pkg/security"
	"risk_assessment_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
	cleanups        []func()
}

type repositories struct {
	user       *repository.UserRepository
	student    *repository.StudentRepository
	assessment *repository.AssessmentRepository
}

type services struct {
	storage    *service.StorageService
	auth       *service.AuthService
	user       *service.UserService
	student    *service.StudentService
	statistics *service.StatisticsService
	assessment *service.AssessmentService
	report     *service.ReportService
}

type controllers struct {
	auth       *controller.AuthController
	assessment *controller.AssessmentController
	student    *controller.StudentController
	user       *controller.UserController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) onClose(fn func()) {
	a.cleanups = append(a.cleanups, fn)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		student:    repository.NewStudentRepository(db),
		assessment: repository.NewAssessmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.student = service.NewStudentService(repos.student)

	// 未启用 Redis 时统计直接查库
	var cache service.StatsCache
	if rdb != nil {
		cache = service.NewRedisStatsCache(rdb)
	}
	s.statistics = service.NewStatisticsService(repos.assessment, repos.user, repos.student, cache, cfg.Statistics.CacheTTL())

	s.assessment, err = service.NewAssessmentService(repos.assessment, repos.student, cfg.Scoring.Strategy)
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}
	s.assessment.Invalidator = s.statistics

	s.report = service.NewReportService(s.storage, cfg.Report)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) (*controllers, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	var redisPinger controller.Pinger
	if rdb != nil {
		redisPinger = controller.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		assessment: controller.NewAssessmentController(s.assessment, s.report, s.statistics),
		student:    controller.NewStudentController(s.student),
		user:       controller.NewUserController(s.user, s.statistics),
		health:     controller.NewHealthController(sqlDB, redisPinger),
	}, nil
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// applyConfig 配置文件变更后依次回调
func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// NewApp 连接依赖并装配路由；logger 需已初始化
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	flush, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, cfg.Server.Release)
	if err != nil {
		logger.Log.Warn("Failed to initialize sentry", zap.Error(err))
	}
	app.onClose(flush)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	app.DB = db

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}
	app.Redis = rdb
	if rdb != nil {
		app.onClose(func() { rdb.Close() })
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		return nil, err
	}
	app.services = services

	if cfg.ForceMigrate {
		if err := migrate(context.Background(), db, services.auth, cfg.Admin); err != nil {
			return nil, err
		}
	}

	controllers, err := app.initControllers(services, db, rdb)
	if err != nil {
		return nil, err
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.onClose(func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		})
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == "" || cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.registerConfigCallbacks()

	return app, nil
}

// registerConfigCallbacks 热更新只作用于日志级别和统计缓存时长
func (a *App) registerConfigCallbacks() {
	a.RegisterConfigCallback(func(c *config.Config) {
		logger.SetLevel(c.Log.Level)
	})
	a.RegisterConfigCallback(func(c *config.Config) {
		a.services.statistics.SetCacheTTL(c.Statistics.CacheTTL())
	})
}

// Close 释放外部连接，逆序执行
func (a *App) Close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.Config.Path != "" {
		configFile := filepath.Join(a.Config.Path, "config.yaml")
		if err := configwatcher.Watch(ctx, configFile, config.LoadConfig, a.applyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		observability.CaptureErr(err)
		a.Close()
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	err := srv.Shutdown(shutdownCtx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
