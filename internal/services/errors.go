package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers map these onto HTTP
// statuses; see handleServiceError in each handler.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrMaterialNotFound = errors.New("course material not found")

	ErrEmailTaken     = errors.New("email already registered")
	ErrCasdoorIDTaken = errors.New("casdoor id already registered")

	ErrCourseFull      = errors.New("course capacity reached")
	ErrAlreadyEnrolled = errors.New("already enrolled in course")
	ErrNotStudent      = errors.New("only students can enroll")

	ErrTargetNotInstructor = errors.New("target user is not an instructor or admin")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
)

// PermissionError describes a denied action on a resource.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// UpstreamError wraps a failure from an external dependency (identity
// provider, object store). Handlers answer 500 without leaking details.
type UpstreamError struct {
	System string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.System, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(system string, err error) *UpstreamError {
	return &UpstreamError{System: system, Err: err}
}
