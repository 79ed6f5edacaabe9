package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/repositories/casdoor"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	identity  repositories.IdentityRepository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, identity repositories.IdentityRepository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		identity:  identity,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Signup creates the local account for an identity-provider subject. New
// accounts always start as students.
func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	s.logger.Info("Signing up user", "email", req.Email)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	emailTaken, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}

	idTaken, err := s.repo.User().ExistsByCasdoorID(ctx, req.CasdoorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check casdoor id uniqueness: %w", err)
	}
	if idTaken {
		return nil, ErrCasdoorIDTaken
	}

	// Best-effort provider lookup; a missing profile does not block signup
	// because provisioning order is not guaranteed.
	if _, err := s.identity.GetProfile(ctx, req.CasdoorID); err != nil {
		s.logger.Warn("Identity provider profile lookup failed", "casdoor_id", req.CasdoorID, "error", err)
	}

	user := &models.User{
		Email:     req.Email,
		CasdoorID: req.CasdoorID,
		Role:      models.RoleStudent,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	topic, payload := events.UserSignedUp(user.ID, user.Email, string(user.Role))
	s.publishEvent(ctx, topic, payload)

	s.logger.Info("User signed up", "user_id", user.ID)

	return user, nil
}

// Login proxies the credential check to the identity provider and returns its
// token untouched.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	token, err := s.identity.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, casdoor.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, NewUpstreamError("identity provider", err)
	}

	return &LoginResponse{IDToken: token}, nil
}

// ForgotPassword always succeeds from the caller's point of view so account
// existence is not leaked.
func (s *authService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.identity.SendPasswordReset(ctx, req.Email); err != nil {
		s.logger.Warn("Password reset request failed", "error", err)
	}

	return nil
}

func (s *authService) ResolveCaller(ctx context.Context, token string) (*Caller, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.identity.VerifyToken(ctx, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.User().GetByCasdoorID(ctx, claims.Subject)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}

	enrolled, err := s.repo.Enrollment().CourseIDsForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}

	return &Caller{User: user, EnrolledCourseIDs: enrolled}, nil
}

func (s *authService) publishEvent(ctx context.Context, eventType string, payload map[string]any) {
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
