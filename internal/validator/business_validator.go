package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/course-service/internal/models"
)

// BusinessValidator handles rules that go beyond per-field tags.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(models.UserRole(fl.Field().String()))
	})
}

// Validate validates business rules for any struct.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateCourseCreate applies course creation rules.
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, ValidationError{
			Field:   "Title",
			Message: "must not be blank",
			Rule:    "not_blank",
		})
	}

	return errors
}

// ValidateCourseUpdate applies course update rules.
func (bv *BusinessValidator) ValidateCourseUpdate(req *CourseUpdateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		errors = append(errors, ValidationError{
			Field:   "Title",
			Message: "must not be blank",
			Rule:    "not_blank",
		})
	}

	return errors
}
