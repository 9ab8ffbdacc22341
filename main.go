// @title Risk Assessment 后端 API
// @version 1.0
// @description 学生自杀风险评估服务：条件校验、风险分级与报告导出。

// @host localhost:8080
// @BasePath /api

package main

import (
	"context"
	"fmt"
	"os"

	"risk_assessment_backend/internal/app"
	"risk_assessment_backend/internal/config"
	"risk_assessment_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir string
	migrateOn bool
)

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:           "risk-backend",
		Short:         "学生自杀风险评估后端",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "配置文件目录")
	rootCmd.Flags().BoolVar(&migrateOn, "migrate", false, "启动时执行数据库迁移")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE:  runServe,
	}
	cmd.Flags().BoolVar(&migrateOn, "migrate", false, "启动时执行数据库迁移")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "执行数据库迁移并创建初始管理员，完成后退出",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Log.Sync()

			cfg.ForceMigrate = true
			cfg.MigrateOnly = true
			if err := app.Migrate(context.Background(), cfg); err != nil {
				logger.Log.Error("Migration failed", zap.Error(err))
				return err
			}
			logger.Log.Info("数据库迁移完成，退出程序")
			return nil
		},
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	cfg.ForceMigrate = migrateOn

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Error("Failed to start", zap.Error(err))
		return err
	}
	return application.Run()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")
	return cfg, nil
}
