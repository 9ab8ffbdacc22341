package controller

import (
	"context"
	"net/http"
	"time"

	"risk_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// Pinger 数据库、Redis 等依赖的连通性检查
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc 把普通函数适配为 Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type HealthController struct {
	DB    Pinger
	Redis Pinger
}

func NewHealthController(db, redis Pinger) *HealthController {
	return &HealthController{DB: db, Redis: redis}
}

// @Summary 健康检查
// @Description 检查数据库（以及启用时的 Redis）连接
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.DB.PingContext(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up"}
	if c.Redis != nil {
		// Redis 只用于统计缓存，不可用时降级
		if err := c.Redis.PingContext(pingCtx); err != nil {
			components["redis"] = "down"
		} else {
			components["redis"] = "up"
		}
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
