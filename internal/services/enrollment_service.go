package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type enrollmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewEnrollmentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Enroll adds the caller to a course. The whole transition runs in one
// transaction with the course row locked, so concurrent enrollments at the
// capacity boundary serialize and the loser gets ErrCourseFull. Checks run in
// a fixed order: existence, role, capacity, duplicate.
func (s *enrollmentService) Enroll(ctx context.Context, caller *Caller, courseID uint) error {
	s.logger.Info("Enrolling user", "user_id", caller.ID(), "course_id", courseID)

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		course, err := tx.Course().GetByIDForUpdate(ctx, courseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to lock course: %w", err)
		}

		if caller.Role() != models.RoleStudent {
			return ErrNotStudent
		}

		if course.Capacity != nil {
			count, err := tx.Enrollment().CountForCourse(ctx, courseID)
			if err != nil {
				return fmt.Errorf("failed to count enrollments: %w", err)
			}
			if count >= int64(*course.Capacity) {
				return ErrCourseFull
			}
		}

		exists, err := tx.Enrollment().Exists(ctx, caller.ID(), courseID)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if exists {
			return ErrAlreadyEnrolled
		}

		return tx.Enrollment().Create(ctx, &models.Enrollment{
			UserID:   caller.ID(),
			CourseID: courseID,
		})
	})
	if err != nil {
		return err
	}

	topic, payload := events.EnrollmentCreated(caller.ID(), courseID)
	s.publishEvent(ctx, topic, payload)

	s.logger.Info("User enrolled", "user_id", caller.ID(), "course_id", courseID)

	return nil
}

func (s *enrollmentService) Students(ctx context.Context, caller *Caller, courseID uint) ([]*models.User, error) {
	if !CanViewRoster(caller) {
		return nil, NewPermissionError(caller.ID(), courseID, "course", "list_students", "instructor or admin role required")
	}

	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	students, err := s.repo.Enrollment().StudentsForCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return students, nil
}

func (s *enrollmentService) publishEvent(ctx context.Context, eventType string, payload map[string]any) {
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
