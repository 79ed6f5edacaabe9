package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository
	Material() MaterialRepository

	// WithTransaction runs fn against a transaction-scoped Repository. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager handles repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// IsNotFoundError reports whether err means "row does not exist".
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
