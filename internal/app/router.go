package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, activity middleware.UserActivityRepo, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses", c.course.List)
		public.GET("/courses/:id", c.course.Get)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(activity))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 课程注册
	rg.POST("/courses/:id/enroll", c.course.Enroll)

	// 练习
	rg.GET("/courses/:id/exercises", c.exercise.ListByCourse)
	rg.GET("/exercises/:id", c.exercise.Get)
	rg.POST("/exercises/:id/submit", c.exercise.Submit)

	// 进度
	rg.GET("/progress", c.progress.GetMyProgress)
	rg.GET("/progress/courses/:courseId", c.progress.GetMyCourseProgress)
	rg.POST("/progress/courses/:courseId/topics/:topicId/complete", c.progress.CompleteTopic)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		// 课程管理
		instructor.POST("/courses", c.course.Create)
		instructor.PUT("/courses/:id", c.course.Update)
		instructor.DELETE("/courses/:id", c.course.Delete)
		instructor.POST("/courses/:id/topics", c.course.AddTopic)
		instructor.POST("/courses/:id/topics/:topicId/video", c.course.UploadTopicVideo)

		// 练习管理
		instructor.POST("/exercises", c.exercise.Create)
		instructor.PUT("/exercises/:id", c.exercise.Update)
		instructor.DELETE("/exercises/:id", c.exercise.Delete)

		// 学生进度与评分
		instructor.GET("/instructor/courses/:courseId/progress", c.progress.GetCourseProgress)
		instructor.POST("/instructor/exercises/:exerciseId/grade", c.progress.Grade)
	}
}
