package app

import (
	"edu_testing_backend/docs"
	"edu_testing_backend/internal/config"
	"edu_testing_backend/internal/middleware"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		registerStudentRoutes(authGroup, c)
		registerTeacherRoutes(authGroup, c)
	}
}

func registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// registerStudentRoutes 所有登录用户可访问，权限细节在服务层判断
func registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.GetProfile)

	group.GET("/courses", c.course.ListCourses)
	group.GET("/courses/:id", c.course.GetCourse)
	group.GET("/courses/:id/tests", c.test.ListCourseTests)

	group.POST("/tests/:id/attempts", middleware.RoleMiddleware(model.Student), c.attempt.StartAttempt)
	group.GET("/tests/:id/attempts", c.attempt.GetAttempts)

	attempts := group.Group("/attempts")
	{
		attempts.GET("/:id", c.attempt.GetAttempt)
		attempts.POST("/:id/answers", c.attempt.SubmitAnswer)
		attempts.POST("/:id/finish", c.attempt.FinishAttempt)
		attempts.POST("/:id/abandon", c.attempt.AbandonAttempt)
	}
}

func registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/courses", c.course.CreateCourse)
		teacher.POST("/courses/:id/enrollments", c.course.Enroll)
		teacher.DELETE("/courses/:id/enrollments/:studentId", c.course.CancelEnrollment)

		teacher.POST("/tests", c.test.CreateTest)
		teacher.GET("/tests/:id", c.test.GetTest)
		teacher.PUT("/tests/:id", c.test.UpdateTest)
		teacher.DELETE("/tests/:id", c.test.DeleteTest)
		teacher.POST("/tests/:id/publish", c.test.PublishTest)
		teacher.POST("/tests/:id/unpublish", c.test.UnpublishTest)
		teacher.GET("/tests/:id/statistics", c.test.GetStatistics)
		teacher.POST("/tests/:id/statistics/recompute", c.test.RecomputeStatistics)
		teacher.POST("/tests/:id/export", c.test.ExportAttempts)
	}
}
