package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialPostgreSQL(db *gorm.DB) repositories.MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *models.CourseMaterial) error {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		return handleDBError(err, "create course material")
	}
	return nil
}

func (r *materialRepository) GetByID(ctx context.Context, id uint) (*models.CourseMaterial, error) {
	var material models.CourseMaterial

	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, handleDBError(err, "get course material by id")
	}

	return &material, nil
}

func (r *materialRepository) ListForCourse(ctx context.Context, courseID uint) ([]*models.CourseMaterial, error) {
	var materials []*models.CourseMaterial

	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&materials).Error; err != nil {
		return nil, handleDBError(err, "list course materials")
	}

	return materials, nil
}

func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.CourseMaterial{}, id).Error; err != nil {
		return handleDBError(err, "delete course material")
	}
	return nil
}
