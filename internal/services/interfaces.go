package services

import (
	"context"
	"io"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type SignupRequest = validator.SignupRequest
type LoginRequest = validator.LoginRequest
type ForgotPasswordRequest = validator.ForgotPasswordRequest
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type AssignInstructorRequest = validator.AssignInstructorRequest
type UserListRequest = validator.UserListRequest

type LoginResponse struct {
	IDToken string `json:"id_token"`
}

type CourseResponse struct {
	*models.Course
	EnrolledCount int64 `json:"enrolled_count"`
	CanEdit       bool  `json:"can_edit"`
}

type CourseListResponse struct {
	Courses []*CourseResponse `json:"courses"`
	Total   int64             `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

type UserListResponse struct {
	Users  []*models.User `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type MeResponse struct {
	*models.User
	EnrolledCourseIDs []uint `json:"enrolled_course_ids"`
}

// MaterialUpload carries the parsed multipart upload into the service.
type MaterialUpload struct {
	Title       string
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// MaterialResponse pairs a stored material with a fresh time-limited
// download URL.
type MaterialResponse struct {
	*models.CourseMaterial
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error

	// ResolveCaller turns a verified bearer token into the local caller. It
	// returns ErrUnauthenticated for a bad token and ErrUserNotFound when the
	// subject has no local account.
	ResolveCaller(ctx context.Context, token string) (*Caller, error)
}

type UserService interface {
	List(ctx context.Context, caller *Caller, req *UserListRequest) (*UserListResponse, error)
	Me(ctx context.Context, caller *Caller) (*MeResponse, error)
}

type CourseService interface {
	Create(ctx context.Context, caller *Caller, req *CreateCourseRequest) (*CourseResponse, error)
	GetByID(ctx context.Context, caller *Caller, id uint) (*CourseResponse, error)
	Update(ctx context.Context, caller *Caller, id uint, req *UpdateCourseRequest) (*CourseResponse, error)
	Delete(ctx context.Context, caller *Caller, id uint) error
	List(ctx context.Context, caller *Caller, filters repositories.CourseFilters) (*CourseListResponse, error)
	AssignInstructor(ctx context.Context, caller *Caller, courseID uint, req *AssignInstructorRequest) (*CourseResponse, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, caller *Caller, courseID uint) error
	Students(ctx context.Context, caller *Caller, courseID uint) ([]*models.User, error)
}

type MaterialService interface {
	Upload(ctx context.Context, caller *Caller, courseID uint, upload *MaterialUpload) (*models.CourseMaterial, error)
	List(ctx context.Context, caller *Caller, courseID uint) ([]*MaterialResponse, error)
	Delete(ctx context.Context, caller *Caller, courseID, materialID uint) error
}

type RosterService interface {
	// ExportRoster renders the course roster as an xlsx workbook.
	ExportRoster(ctx context.Context, caller *Caller, courseID uint) ([]byte, string, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Course() CourseService
	Enrollment() EnrollmentService
	Material() MaterialService
	Roster() RosterService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
