package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/storage"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// ServiceManagerConfig holds the dependencies shared by all services.
type ServiceManagerConfig struct {
	Repo              repositories.Repository
	Identity          repositories.IdentityRepository
	Store             storage.ObjectStore
	Publisher         events.EventPublisher
	Logger            *slog.Logger
	Validator         *validator.Validator
	BusinessValidator *validator.BusinessValidator
}

// serviceManager implements ServiceManager.
type serviceManager struct {
	config ServiceManagerConfig

	authService       AuthService
	userService       UserService
	courseService     CourseService
	enrollmentService EnrollmentService
	materialService   MaterialService
	rosterService     RosterService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(config ServiceManagerConfig) ServiceManager {
	return &serviceManager{config: config}
}

// Initialize wires up all services.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.config.Repo == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.config.Identity == nil {
		return fmt.Errorf("identity repository is required")
	}
	if sm.config.Store == nil {
		return fmt.Errorf("object store is required")
	}
	if sm.config.Publisher == nil {
		return fmt.Errorf("event publisher is required")
	}

	cfg := sm.config

	sm.authService = NewAuthService(cfg.Repo, cfg.Identity, cfg.Publisher, cfg.Logger, cfg.Validator)
	sm.userService = NewUserService(cfg.Repo, cfg.Logger, cfg.BusinessValidator)
	sm.courseService = NewCourseService(cfg.Repo, cfg.Publisher, cfg.Logger, cfg.BusinessValidator)
	sm.enrollmentService = NewEnrollmentService(cfg.Repo, cfg.Publisher, cfg.Logger)
	sm.materialService = NewMaterialService(cfg.Repo, cfg.Store, cfg.Publisher, cfg.Logger, cfg.Validator)
	sm.rosterService = NewRosterService(cfg.Repo, cfg.Logger)

	sm.initialized = true
	cfg.Logger.Info("Service manager initialized")

	return nil
}

// Service getters panic on use before Initialize, matching how the server
// wires dependencies at startup.

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.userService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.enrollmentService
}

func (sm *serviceManager) Material() MaterialService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.materialService
}

func (sm *serviceManager) Roster() RosterService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.rosterService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.config.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.config.Logger.Info("Shutting down service manager")

	if err := sm.config.Publisher.Close(); err != nil {
		sm.config.Logger.Error("Failed to close event publisher", "error", err)
	}

	if err := sm.config.Store.Close(); err != nil {
		sm.config.Logger.Error("Failed to close object store", "error", err)
	}

	if err := sm.config.Repo.Close(); err != nil {
		sm.config.Logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.config.Logger.Info("Service manager shut down")

	return nil
}
