package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/storage"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

const downloadURLTTL = time.Hour

type materialService struct {
	repo      repositories.Repository
	store     storage.ObjectStore
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewMaterialService(repo repositories.Repository, store storage.ObjectStore, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) MaterialService {
	return &materialService{
		repo:      repo,
		store:     store,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Upload stores the file in the object store first and records it locally
// only after the upload succeeds, so a storage failure leaves no dangling
// row.
func (s *materialService) Upload(ctx context.Context, caller *Caller, courseID uint, upload *MaterialUpload) (*models.CourseMaterial, error) {
	s.logger.Info("Uploading material", "course_id", courseID, "user_id", caller.ID(), "filename", upload.Filename)

	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !CanManageCourse(caller, course) {
		return nil, NewPermissionError(caller.ID(), courseID, "course", "upload_material", "not owner or admin")
	}

	req := validator.MaterialUploadRequest{Title: upload.Title}
	if err := s.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	key := objectKey(courseID, upload.Filename)

	if err := s.store.Upload(ctx, key, upload.ContentType, upload.Data); err != nil {
		return nil, NewUpstreamError("object store", err)
	}

	metadata, _ := json.Marshal(map[string]any{
		"original_filename": upload.Filename,
		"size_bytes":        upload.Size,
	})

	material := &models.CourseMaterial{
		Title:       upload.Title,
		FilePath:    key,
		ContentType: upload.ContentType,
		Metadata:    datatypes.JSON(metadata),
		CourseID:    courseID,
	}

	if err := s.repo.Material().Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material record: %w", err)
	}

	topic, payload := events.MaterialUploaded(material.ID, courseID, key)
	s.publishEvent(ctx, topic, payload)

	s.logger.Info("Material uploaded", "material_id", material.ID, "file_path", key)

	return material, nil
}

// List returns the course materials, each with a fresh signed download URL.
// The access check runs before any storage call.
func (s *materialService) List(ctx context.Context, caller *Caller, courseID uint) ([]*MaterialResponse, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !CanViewCourseContent(caller, course) {
		return nil, NewPermissionError(caller.ID(), courseID, "course", "list_materials", "not enrolled, owner, or admin")
	}

	materials, err := s.repo.Material().ListForCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	responses := make([]*MaterialResponse, 0, len(materials))
	for _, material := range materials {
		url, err := s.store.SignedURL(material.FilePath, downloadURLTTL)
		if err != nil {
			return nil, NewUpstreamError("object store", err)
		}

		responses = append(responses, &MaterialResponse{
			CourseMaterial: material,
			DownloadURL:    url,
			ExpiresAt:      time.Now().Add(downloadURLTTL),
		})
	}

	return responses, nil
}

// Delete removes the local record only. The stored object is left in place;
// orphans are accepted until a cleanup job exists.
func (s *materialService) Delete(ctx context.Context, caller *Caller, courseID, materialID uint) error {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}

	if !CanManageCourse(caller, course) {
		return NewPermissionError(caller.ID(), courseID, "course", "delete_material", "not owner or admin")
	}

	material, err := s.repo.Material().GetByID(ctx, materialID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to get material: %w", err)
	}

	if material.CourseID != courseID {
		return ErrMaterialNotFound
	}

	if err := s.repo.Material().Delete(ctx, materialID); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}

	s.logger.Info("Material deleted", "material_id", materialID, "file_path", material.FilePath)

	return nil
}

// ===== HELPERS =====

func (s *materialService) getCourse(ctx context.Context, courseID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func objectKey(courseID uint, filename string) string {
	return fmt.Sprintf("courses/%d/materials/%s%s", courseID, uuid.NewString(), filepath.Ext(filename))
}

func (s *materialService) publishEvent(ctx context.Context, eventType string, payload map[string]any) {
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
