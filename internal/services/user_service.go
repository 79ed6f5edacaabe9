package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, businessValidator *validator.BusinessValidator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: businessValidator,
	}
}

func (s *userService) List(ctx context.Context, caller *Caller, req *UserListRequest) (*UserListResponse, error) {
	if !IsAdmin(caller) {
		return nil, NewPermissionError(caller.ID(), 0, "user", "list", "admin role required")
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	filters := repositories.UserFilters{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Role != "" {
		role := models.UserRole(req.Role)
		filters.Role = &role
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users:  users,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

func (s *userService) Me(ctx context.Context, caller *Caller) (*MeResponse, error) {
	return &MeResponse{
		User:              caller.User,
		EnrolledCourseIDs: caller.EnrolledCourseIDs,
	}, nil
}
