package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== CORE CRUD ENDPOINTS =====

// CreateCourse creates a new course owned by the caller
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body services.CreateCourseRequest true "Course creation request"
// @Success 201 {object} services.CourseResponse
// @Failure 403 {object} ErrorResponse "Caller is not instructor or admin"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	resp, err := h.service.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetCourse retrieves a course by ID. Public.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), optionalCaller(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListCourses returns a paginated course list. Public.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	filters := repositories.CourseFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("owner_id"); raw != "" {
		ownerID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid owner_id filter"})
			return
		}
		id := uint(ownerID)
		filters.OwnerID = &id
	}

	resp, err := h.service.List(c.Request.Context(), optionalCaller(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateCourse updates a course. Owner or admin only.
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	resp, err := h.service.Update(c.Request.Context(), caller, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteCourse deletes a course and its materials. Owner or admin only.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

// AssignInstructor reassigns course ownership. Admin only; the target must
// already be an instructor or admin.
func (h *CourseHandler) AssignInstructor(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	var req services.AssignInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	resp, err := h.service.AssignInstructor(c.Request.Context(), caller, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===== HELPERS =====

func courseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid course ID"})
		return 0, false
	}
	return uint(id), true
}

func (h *CourseHandler) handleServiceError(c *gin.Context, err error) {
	var perm *services.PermissionError
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, services.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Course not found",
		})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found",
		})
	case errors.Is(err, services.ErrTargetNotInstructor):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Target user is not an instructor or admin",
		})
	case errors.As(err, &perm):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
		})
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: verrs,
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
