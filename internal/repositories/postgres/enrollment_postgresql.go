package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return handleDBError(err, "create enrollment")
	}
	return nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check enrollment exists")
	}

	return count > 0, nil
}

func (r *enrollmentRepository) CountForCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count enrollments for course")
	}

	return count, nil
}

func (r *enrollmentRepository) CourseIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint

	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Order("course_id ASC").
		Pluck("course_id", &ids).Error; err != nil {
		return nil, handleDBError(err, "get course ids for user")
	}

	return ids, nil
}

func (r *enrollmentRepository) StudentsForCourse(ctx context.Context, courseID uint) ([]*models.User, error) {
	var students []*models.User

	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("INNER JOIN enrollments ON enrollments.user_id = users.id").
		Where("enrollments.course_id = ?", courseID).
		Order("users.id ASC").
		Find(&students).Error; err != nil {
		return nil, handleDBError(err, "get students for course")
	}

	return students, nil
}
