package middleware

import (
	"context"
	"strings"

	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/util"
	"risk_assessment_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserChecker 确认令牌中的用户仍然有效
type UserChecker interface {
	CurrentUser(ctx context.Context, userID uint) (*model.User, error)
}

// tokenFrom 依次读取 Authorization: Bearer 和 x-token 头
func tokenFrom(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); token != "" && token != auth {
			return token
		}
	}
	return strings.TrimSpace(c.GetHeader(util.TokenHeader))
}

func AuthMiddleware(secret string, users UserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFrom(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("jwt rejected", zap.Error(err), zap.String("path", c.FullPath()))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if users != nil {
			user, err := users.CurrentUser(c.Request.Context(), claims.UserID)
			if err != nil {
				logger.Log.Info("token user rejected", zap.Uint("user_id", claims.UserID), zap.Error(err))
				util.Unauthorized(c)
				c.Abort()
				return
			}
			// 角色以数据库为准
			claims.Role = user.Role
		}

		util.SetUserInContext(c, claims)
		c.Next()
	}
}

// RoleMiddleware 管理员拥有全部权限
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		allowed := user.Role == model.Admin
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}

		if !allowed {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			// 异步更新，不阻塞主流程
			go func(id uint) {
				if err := repo.UpdateLastSeen(id); err != nil {
					logger.Log.Warn("failed to update last seen", zap.Uint("user_id", id), zap.Error(err))
				}
			}(claims.UserID)
		}
		c.Next()
	}
}
