package app

import (
	"risk_assessment_backend/docs"
	"risk_assessment_backend/internal/middleware"
	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	// 1. 运维接口
	router.GET("/metrics", monitoring.PrometheusHandler())
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// 2. 公开接口
	a.registerPublicRoutes(api, c)

	// 3. 需要登录的接口
	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(a.Config.JWT.Secret, a.services.auth), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/auth", c.auth.Me)

		a.registerPsychologistRoutes(authGroup, c)

		// 4. 管理员相关接口
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/health", c.health.HealthCheck)
	api.POST("/auth/login", c.auth.Login)
}

// 心理师接口，管理员同样可以访问
func (a *App) registerPsychologistRoutes(group *gin.RouterGroup, c *controllers) {
	psych := group.Group("")
	psych.Use(middleware.RoleMiddleware(model.Psychologist))
	{
		assessments := psych.Group("/suicide-assessments")
		{
			assessments.POST("", c.assessment.CreateAssessment)
			assessments.GET("", c.assessment.ListAssessments)
			assessments.GET("/statistics", c.assessment.GetStatistics)
			assessments.GET("/:id", c.assessment.GetAssessment)
			assessments.GET("/:id/report", c.assessment.GetReport)
		}

		students := psych.Group("/students")
		{
			students.POST("", c.student.CreateStudent)
			students.GET("", c.student.ListStudents)
			students.GET("/:id", c.student.GetStudent)
		}
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/statistics/admin", c.user.GetAdminStatistics)
		admin.POST("/admin/users", c.user.CreateUser)
		admin.GET("/admin/users", c.user.GetUsers)
	}
}
