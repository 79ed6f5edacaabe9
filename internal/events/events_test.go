package events

import "testing"

func TestPayloadBuilders(t *testing.T) {
	t.Run("user signed up", func(t *testing.T) {
		topic, payload := UserSignedUp(7, "a@example.com", "student")
		if topic != TopicUserSignedUp {
			t.Errorf("topic = %q, want %q", topic, TopicUserSignedUp)
		}
		if payload["user_id"] != uint(7) || payload["email"] != "a@example.com" || payload["role"] != "student" {
			t.Errorf("payload = %+v", payload)
		}
	})

	t.Run("course created with owner", func(t *testing.T) {
		owner := uint(3)
		topic, payload := CourseCreated(11, &owner, "Databases")
		if topic != TopicCourseCreated {
			t.Errorf("topic = %q, want %q", topic, TopicCourseCreated)
		}
		if payload["course_id"] != uint(11) || payload["owner_id"] != uint(3) || payload["title"] != "Databases" {
			t.Errorf("payload = %+v", payload)
		}
	})

	t.Run("course created without owner omits owner_id", func(t *testing.T) {
		_, payload := CourseCreated(11, nil, "Databases")
		if _, ok := payload["owner_id"]; ok {
			t.Errorf("payload should omit owner_id: %+v", payload)
		}
	})

	t.Run("enrollment created", func(t *testing.T) {
		topic, payload := EnrollmentCreated(7, 11)
		if topic != TopicEnrollmentCreated {
			t.Errorf("topic = %q, want %q", topic, TopicEnrollmentCreated)
		}
		if payload["user_id"] != uint(7) || payload["course_id"] != uint(11) {
			t.Errorf("payload = %+v", payload)
		}
	})

	t.Run("material uploaded", func(t *testing.T) {
		topic, payload := MaterialUploaded(5, 11, "courses/11/materials/x.pdf")
		if topic != TopicMaterialUploaded {
			t.Errorf("topic = %q, want %q", topic, TopicMaterialUploaded)
		}
		if payload["material_id"] != uint(5) || payload["file_path"] != "courses/11/materials/x.pdf" {
			t.Errorf("payload = %+v", payload)
		}
	})
}
