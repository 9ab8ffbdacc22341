package app

import (
	"context"
	"fmt"

	"risk_assessment_backend/internal/config"
	"risk_assessment_backend/internal/repository"
	"risk_assessment_backend/internal/service"
	"risk_assessment_backend/pkg/database"
	"risk_assessment_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate 建表并创建初始管理员，供 migrate 子命令使用
func Migrate(ctx context.Context, cfg *config.Config) error {
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	auth := service.NewAuthService(repository.NewUserRepository(db), cfg)
	return migrate(ctx, db, auth, cfg.Admin)
}

func migrate(ctx context.Context, db *gorm.DB, auth *service.AuthService, admin config.AdminConfig) error {
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	created, err := auth.EnsureAdmin(ctx, admin)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		logger.Log.Info("Initial admin created", zap.String("email", admin.Email))
	}
	return nil
}
