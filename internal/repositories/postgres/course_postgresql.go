package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course

	if err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&course, id).Error; err != nil {
		return nil, handleDBError(err, "get course by id")
	}

	return &course, nil
}

// GetByIDForUpdate locks the course row for the duration of the surrounding
// transaction. Callers must invoke it through WithTransaction.
func (r *courseRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course

	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&course, id).Error; err != nil {
		return nil, handleDBError(err, "get course by id for update")
	}

	return &course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return handleDBError(err, "update course")
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&models.Course{ID: id}).Error; err != nil {
		return handleDBError(err, "delete course")
	}
	return nil
}

func (r *courseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var courses []*models.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filters.OwnerID != nil {
		query = query.Where("owner_id = ?", *filters.OwnerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count courses")
	}

	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Preload("Owner").Order("id ASC").Find(&courses).Error; err != nil {
		return nil, 0, handleDBError(err, "list courses")
	}

	return courses, total, nil
}
