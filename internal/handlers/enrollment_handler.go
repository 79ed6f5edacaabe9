package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	service services.EnrollmentService
	roster  services.RosterService
}

func NewEnrollmentHandler(service services.EnrollmentService, roster services.RosterService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		roster:      roster,
	}
}

// Enroll enrolls the caller into a course
// @Summary Enroll in a course
// @Tags enrollment
// @Produce json
// @Param id path int true "Course ID"
// @Success 201 {object} map[string]string
// @Failure 403 {object} ErrorResponse "Caller is not a student"
// @Failure 409 {object} ErrorResponse "Course full or already enrolled"
// @Router /courses/{id}/enroll [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	if err := h.service.Enroll(c.Request.Context(), caller, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Enrolled successfully"})
}

// ListStudents returns the enrolled students of a course. Instructors and
// admins only.
func (h *EnrollmentHandler) ListStudents(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	students, err := h.service.Students(c.Request.Context(), caller, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

// ExportStudents downloads the roster as an xlsx workbook. Owner or admin
// only.
func (h *EnrollmentHandler) ExportStudents(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	data, filename, err := h.roster.ExportRoster(c.Request.Context(), caller, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *EnrollmentHandler) handleServiceError(c *gin.Context, err error) {
	var perm *services.PermissionError

	switch {
	case errors.Is(err, services.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Course not found",
		})
	case errors.Is(err, services.ErrNotStudent):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Only students can enroll",
		})
	case errors.Is(err, services.ErrCourseFull):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Course capacity reached",
		})
	case errors.Is(err, services.ErrAlreadyEnrolled):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Already enrolled in this course",
		})
	case errors.As(err, &perm):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
