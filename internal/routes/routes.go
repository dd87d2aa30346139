package routes

import (
	"github.com/gin-gonic/gin"

	"tasktracker/internal/authz"
	"tasktracker/internal/handlers"
	"tasktracker/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	categoryHandler *handlers.CategoryHandler,
	taskHandler *handlers.TaskHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/register", userHandler.Register)
	r.POST("/password/forgot", authHandler.ForgotPassword)
	r.POST("/password/reset", authHandler.ResetPassword)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	// TASKS (any authenticated principal; per-row policy in the service)
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.List)
		tasks.GET("/search", taskHandler.Search)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	// CATEGORIES (admin)
	categories := r.Group("/categories", middleware.RequireRoles(authz.RoleAdmin))
	{
		categories.POST("/", categoryHandler.Create)
		categories.GET("/", categoryHandler.List)
		categories.GET("/:id", categoryHandler.GetByID)
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	// USERS
	users := r.Group("/users")
	{
		users.GET("/", userHandler.List)
		users.GET("/:id", userHandler.GetByID)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// REPORTS (admin)
	reports := r.Group("/reports", middleware.RequireRoles(authz.RoleAdmin))
	{
		reports.GET("/tasks.pdf", reportHandler.TasksPDF)
	}

	return r
}
