package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	userHandler       *UserHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	materialHandler   *MaterialHandler
	authMiddleware    *AuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:       NewUserHandler(serviceManager.User(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), serviceManager.Roster(), logger),
		materialHandler:   NewMaterialHandler(serviceManager.Material(), logger),
		authMiddleware:    NewAuthMiddleware(serviceManager.Auth()),
		serviceManager:    serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Auth routes - no token required
		auth := api.Group("/auth")
		{
			auth.POST("/signup", hm.authHandler.Signup)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/forgot-password", hm.authHandler.ForgotPassword)
		}

		// Course routes
		courses := api.Group("/courses")
		{
			// Public reads; the optional token only enriches responses
			courses.GET("", hm.authMiddleware.OptionalAuth(), hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.authMiddleware.OptionalAuth(), hm.courseHandler.GetCourse)

			// Writes require a resolved caller
			courses.POST("", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRole(models.RoleInstructor), hm.courseHandler.CreateCourse)
			courses.PUT("/:id", hm.authMiddleware.RequireAuth(), hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.authMiddleware.RequireAuth(), hm.courseHandler.DeleteCourse)
			courses.PATCH("/:id/assign-instructor", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRole(models.RoleAdmin), hm.courseHandler.AssignInstructor)

			// Enrollment
			courses.POST("/:id/enroll", hm.authMiddleware.RequireAuth(), hm.enrollmentHandler.Enroll)
			courses.GET("/:id/students", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRole(models.RoleInstructor), hm.enrollmentHandler.ListStudents)
			courses.GET("/:id/students/export", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRole(models.RoleInstructor), hm.enrollmentHandler.ExportStudents)

			// Materials
			courses.POST("/:id/materials", hm.authMiddleware.RequireAuth(), hm.authMiddleware.RequireRole(models.RoleInstructor), hm.materialHandler.UploadMaterial)
			courses.GET("/:id/materials", hm.authMiddleware.RequireAuth(), hm.materialHandler.ListMaterials)
			courses.DELETE("/:id/materials/:material_id", hm.authMiddleware.RequireAuth(), hm.materialHandler.DeleteMaterial)
		}

		// User routes
		users := api.Group("/users")
		users.Use(hm.authMiddleware.RequireAuth())
		{
			users.GET("", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.userHandler.ListUsers)
			users.GET("/me", hm.userHandler.Me)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "course-service",
		})
	})
}
