package events

import "time"

// Topics for domain events.
const (
	TopicUserSignedUp      = "course-service.user.signed_up"
	TopicCourseCreated     = "course-service.course.created"
	TopicEnrollmentCreated = "course-service.enrollment.created"
	TopicMaterialUploaded  = "course-service.material.uploaded"
)

// Event is the envelope for all domain events published by the service.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// UserSignedUp builds the payload for a new local account.
func UserSignedUp(userID uint, email, role string) (string, map[string]any) {
	return TopicUserSignedUp, map[string]any{
		"user_id": userID,
		"email":   email,
		"role":    role,
	}
}

// CourseCreated builds the payload for a newly created course.
func CourseCreated(courseID uint, ownerID *uint, title string) (string, map[string]any) {
	payload := map[string]any{
		"course_id": courseID,
		"title":     title,
	}
	if ownerID != nil {
		payload["owner_id"] = *ownerID
	}
	return TopicCourseCreated, payload
}

// EnrollmentCreated builds the payload for a new enrollment pair.
func EnrollmentCreated(userID, courseID uint) (string, map[string]any) {
	return TopicEnrollmentCreated, map[string]any{
		"user_id":   userID,
		"course_id": courseID,
	}
}

// MaterialUploaded builds the payload for a stored course material.
func MaterialUploaded(materialID, courseID uint, filePath string) (string, map[string]any) {
	return TopicMaterialUploaded, map[string]any{
		"material_id": materialID,
		"course_id":   courseID,
		"file_path":   filePath,
	}
}
