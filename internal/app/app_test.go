package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"risk_assessment_backend/internal/config"
	"risk_assessment_backend/internal/util"
	"risk_assessment_backend/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.JWT.Secret = "app-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = util.StorageLocal
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Statistics.CacheTTLSeconds = 60
	cfg.RateLimit.MaxRequests = 1000
	cfg.RateLimit.WindowMinutes = 1

	a := &App{Config: cfg, DB: db}
	repos := a.initRepositories(db)
	s, err := a.initServices(repos, cfg, nil)
	require.NoError(t, err)
	a.services = s

	c, err := a.initControllers(s, db, nil)
	require.NoError(t, err)

	router := gin.New()
	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, c, repos)
	a.Router = router
	return a
}

func TestRegisterRoutes(t *testing.T) {
	a := newTestApp(t)

	registered := map[string]bool{}
	for _, r := range a.Router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /api/health",
		"POST /api/auth/login",
		"GET /api/auth",
		"POST /api/suicide-assessments",
		"GET /api/suicide-assessments",
		"GET /api/suicide-assessments/statistics",
		"GET /api/suicide-assessments/:id",
		"GET /api/suicide-assessments/:id/report",
		"POST /api/students",
		"GET /api/students",
		"GET /api/students/:id",
		"GET /api/statistics/admin",
		"POST /api/admin/users",
		"GET /api/admin/users",
		"GET /metrics",
		"GET /swagger/*any",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/api/suicide-assessments", "/api/students", "/api/admin/users", "/api/auth"} {
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(util.RequestIDHeader))
	}
}

func TestHealthRoute(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t)
	a.registerConfigCallbacks()

	next := &config.Config{}
	next.Log.Level = "warn"
	next.Statistics.CacheTTLSeconds = 5
	a.applyConfig(next)

	assert.Equal(t, 5*time.Second, a.services.statistics.CacheTTL())
	assert.Equal(t, zapcore.WarnLevel, logger.Level())
	logger.SetLevel("info")
}
