package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// maxUploadBytes caps course material uploads at 50 MiB.
const maxUploadBytes = 50 << 20

type MaterialHandler struct {
	BaseHandler
	service services.MaterialService
}

func NewMaterialHandler(service services.MaterialService, logger utils.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// UploadMaterial stores a multipart file for a course. Owner or admin only.
func (h *MaterialHandler) UploadMaterial(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing or invalid file field",
			Details: err.Error(),
		})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	upload := &services.MaterialUpload{
		Title:       title,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        file,
	}

	material, err := h.service.Upload(c.Request.Context(), caller, id, upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

// ListMaterials returns the course materials with fresh signed download
// URLs. Admin, owner, or enrolled students only.
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	materials, err := h.service.List(c.Request.Context(), caller, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

// DeleteMaterial removes a material record. Owner or admin only. The stored
// object is kept.
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}

	materialID, err := strconv.ParseUint(c.Param("material_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid material ID"})
		return
	}

	caller, err := GetCallerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id, uint(materialID)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Material deleted"})
}

func (h *MaterialHandler) handleServiceError(c *gin.Context, err error) {
	var perm *services.PermissionError
	var verrs validator.ValidationErrors
	var upstream *services.UpstreamError

	switch {
	case errors.Is(err, services.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Course not found",
		})
	case errors.Is(err, services.ErrMaterialNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Material not found",
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
	case errors.As(err, &upstream):
		h.LogError(c, err, "Object store failure")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Storage backend unavailable",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
