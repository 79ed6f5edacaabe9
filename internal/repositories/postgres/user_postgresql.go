package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}

	return &user, nil
}

func (r *userRepository) GetByCasdoorID(ctx context.Context, casdoorID string) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).
		Where("casdoor_id = ?", casdoorID).
		First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by casdoor id")
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})

	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count users")
	}

	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Order("id ASC").Find(&users).Error; err != nil {
		return nil, 0, handleDBError(err, "list users")
	}

	return users, total, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check user email exists")
	}

	return count > 0, nil
}

func (r *userRepository) ExistsByCasdoorID(ctx context.Context, casdoorID string) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("casdoor_id = ?", casdoorID).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check user casdoor id exists")
	}

	return count > 0, nil
}
