package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/config"
	"github.com/taskboard-dev/taskboard/internal/handlers"
	"github.com/taskboard-dev/taskboard/internal/middleware"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/profile", middleware.AuthMiddleware(), handlers.UpdateProfile)
		}

		api.GET("/dashboard", middleware.AuthMiddleware(), handlers.GetDashboard)
		api.GET("/calendar", middleware.AuthMiddleware(), handlers.GetCalendar)

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.POST("", handlers.CreateTask)
			tasks.GET("", handlers.ListTasks)
			tasks.GET("/:task_id", handlers.GetTask)
			tasks.PATCH("/:task_id", handlers.UpdateTask)
			tasks.DELETE("/:task_id", handlers.DeleteTask)
			tasks.POST("/:task_id/status/:status", handlers.UpdateTaskStatus)
		}
	}

	return r
}
