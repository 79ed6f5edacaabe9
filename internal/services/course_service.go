package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewCourseService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.BusinessValidator) CourseService {
	return &courseService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *courseService) Create(ctx context.Context, caller *Caller, req *CreateCourseRequest) (*CourseResponse, error) {
	s.logger.Info("Creating course", "user_id", caller.ID(), "title", req.Title)

	if !IsInstructorOrAdmin(caller) {
		return nil, NewPermissionError(caller.ID(), 0, "course", "create", "instructor or admin role required")
	}

	if errs := s.validator.ValidateCourseCreate(req); len(errs) > 0 {
		return nil, errs
	}

	ownerID := caller.ID()
	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Capacity:    req.Capacity,
		OwnerID:     &ownerID,
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	topic, payload := events.CourseCreated(course.ID, course.OwnerID, course.Title)
	s.publishEvent(ctx, topic, payload)

	s.logger.Info("Course created", "course_id", course.ID)

	return s.buildCourseResponse(ctx, course, caller), nil
}

func (s *courseService) GetByID(ctx context.Context, caller *Caller, id uint) (*CourseResponse, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return s.buildCourseResponse(ctx, course, caller), nil
}

func (s *courseService) Update(ctx context.Context, caller *Caller, id uint, req *UpdateCourseRequest) (*CourseResponse, error) {
	s.logger.Info("Updating course", "course_id", id, "user_id", caller.ID())

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if !CanManageCourse(caller, course) {
		return nil, NewPermissionError(caller.ID(), id, "course", "update", "not owner or admin")
	}

	if errs := s.validator.ValidateCourseUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Capacity != nil {
		course.Capacity = req.Capacity
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return s.buildCourseResponse(ctx, course, caller), nil
}

func (s *courseService) Delete(ctx context.Context, caller *Caller, id uint) error {
	s.logger.Info("Deleting course", "course_id", id, "user_id", caller.ID())

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	if !CanManageCourse(caller, course) {
		return NewPermissionError(caller.ID(), id, "course", "delete", "not owner or admin")
	}

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}

func (s *courseService) List(ctx context.Context, caller *Caller, filters repositories.CourseFilters) (*CourseListResponse, error) {
	courses, total, err := s.repo.Course().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	responses := make([]*CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, s.buildCourseResponse(ctx, course, caller))
	}

	return &CourseListResponse{
		Courses: responses,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

// ===== OWNERSHIP =====

// AssignInstructor hands the course to another user. Admin only; the target
// must already hold the instructor or admin role.
func (s *courseService) AssignInstructor(ctx context.Context, caller *Caller, courseID uint, req *AssignInstructorRequest) (*CourseResponse, error) {
	s.logger.Info("Assigning instructor", "course_id", courseID, "target_user_id", req.UserID)

	if !IsAdmin(caller) {
		return nil, NewPermissionError(caller.ID(), courseID, "course", "assign_instructor", "admin role required")
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	target, err := s.repo.User().GetByID(ctx, req.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get target user: %w", err)
	}

	if target.Role != models.RoleInstructor && target.Role != models.RoleAdmin {
		return nil, ErrTargetNotInstructor
	}

	course.OwnerID = &target.ID

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to assign instructor: %w", err)
	}

	return s.buildCourseResponse(ctx, course, caller), nil
}

// ===== HELPERS =====

func (s *courseService) buildCourseResponse(ctx context.Context, course *models.Course, caller *Caller) *CourseResponse {
	count, err := s.repo.Enrollment().CountForCourse(ctx, course.ID)
	if err != nil {
		s.logger.Warn("Failed to count enrollments", "course_id", course.ID, "error", err)
	}

	canEdit := false
	if caller != nil {
		canEdit = CanManageCourse(caller, course)
	}

	return &CourseResponse{
		Course:        course,
		EnrolledCount: count,
		CanEdit:       canEdit,
	}
}

func (s *courseService) publishEvent(ctx context.Context, eventType string, payload map[string]any) {
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
