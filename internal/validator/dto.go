package validator

// SignupRequest registers a local account for an existing identity-provider
// subject.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	CasdoorID string `json:"casdoor_id" validate:"required,max=255"`
}

// LoginRequest carries the credential form proxied to the identity provider.
type LoginRequest struct {
	Username string `form:"username" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CourseCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
}

type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
}

type AssignInstructorRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// MaterialUploadRequest covers the non-file fields of the multipart upload.
type MaterialUploadRequest struct {
	Title string `form:"title" validate:"required,max=200"`
}

// UserListRequest covers the query filters for the admin user list.
type UserListRequest struct {
	Role   string `form:"role" validate:"omitempty,user_role"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
}

type PaginationRequest struct {
	Limit  int `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `form:"offset" validate:"omitempty,min=0"`
}
