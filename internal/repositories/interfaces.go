package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type CourseFilters struct {
	OwnerID *uint `json:"owner_id"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByCasdoorID(ctx context.Context, casdoorID string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCasdoorID(ctx context.Context, casdoorID string) (bool, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	// GetByIDForUpdate locks the course row for the duration of the surrounding
	// transaction. Only meaningful inside WithTransaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, userID, courseID uint) (bool, error)
	CountForCourse(ctx context.Context, courseID uint) (int64, error)
	CourseIDsForUser(ctx context.Context, userID uint) ([]uint, error)
	StudentsForCourse(ctx context.Context, courseID uint) ([]*models.User, error)
}

type MaterialRepository interface {
	Create(ctx context.Context, material *models.CourseMaterial) error
	GetByID(ctx context.Context, id uint) (*models.CourseMaterial, error)
	ListForCourse(ctx context.Context, courseID uint) ([]*models.CourseMaterial, error)
	Delete(ctx context.Context, id uint) error
}

// ===== EXTERNAL IDENTITY PROVIDER =====

// IdentityClaims is the verified content of a bearer token.
type IdentityClaims struct {
	Subject string
	Email   string
	Name    string
}

// IdentityProfile is the provider-side view of an account. Profile data may be
// served from cache; authorization never depends on it.
type IdentityProfile struct {
	Subject     string `json:"subject"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// IdentityRepository wraps the external identity provider. Credentials and the
// token lifecycle live entirely on the provider side.
type IdentityRepository interface {
	VerifyToken(ctx context.Context, token string) (*IdentityClaims, error)
	GetProfile(ctx context.Context, subject string) (*IdentityProfile, error)
	Login(ctx context.Context, email, password string) (string, error)
	SendPasswordReset(ctx context.Context, email string) error
}
