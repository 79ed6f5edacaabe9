package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
)

func newEnrollmentFixture() (*mockRepository, *events.MockEventPublisher, EnrollmentService) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher()
	svc := NewEnrollmentService(repo, publisher, testLogger())
	return repo, publisher, svc
}

func TestEnrollmentService_Enroll(t *testing.T) {
	ctx := context.Background()

	t.Run("student enrolls in open course", func(t *testing.T) {
		repo, publisher, svc := newEnrollmentFixture()
		student := repo.addUser("s@example.com", "sub-s", models.RoleStudent)
		course := repo.addCourse("C", nil, nil)

		if err := svc.Enroll(ctx, caller(student.ID, student.Role), course.ID); err != nil {
			t.Fatalf("Enroll: %v", err)
		}

		exists, _ := repo.Enrollment().Exists(ctx, student.ID, course.ID)
		if !exists {
			t.Error("enrollment pair not recorded")
		}

		evts := publisher.GetPublishedEvents()
		if len(evts) != 1 || evts[0].Type != events.TopicEnrollmentCreated {
			t.Errorf("expected enrollment.created event, got %+v", evts)
		}
	})

	t.Run("missing course beats role check", func(t *testing.T) {
		_, publisher, svc := newEnrollmentFixture()

		err := svc.Enroll(ctx, caller(1, models.RoleInstructor), 42)
		if !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("err = %v, want ErrCourseNotFound", err)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("no event expected on failure")
		}
	})

	t.Run("instructor cannot enroll", func(t *testing.T) {
		repo, _, svc := newEnrollmentFixture()
		course := repo.addCourse("C", nil, nil)

		err := svc.Enroll(ctx, caller(1, models.RoleInstructor), course.ID)
		if !errors.Is(err, ErrNotStudent) {
			t.Errorf("err = %v, want ErrNotStudent", err)
		}
	})

	t.Run("full course rejects further students", func(t *testing.T) {
		repo, _, svc := newEnrollmentFixture()
		capacity := 1
		course := repo.addCourse("C", nil, &capacity)
		first := repo.addUser("a@example.com", "sub-a", models.RoleStudent)
		second := repo.addUser("b@example.com", "sub-b", models.RoleStudent)
		repo.enroll(first.ID, course.ID)

		err := svc.Enroll(ctx, caller(second.ID, second.Role), course.ID)
		if !errors.Is(err, ErrCourseFull) {
			t.Errorf("err = %v, want ErrCourseFull", err)
		}
	})

	t.Run("capacity check runs before duplicate check", func(t *testing.T) {
		repo, _, svc := newEnrollmentFixture()
		capacity := 1
		course := repo.addCourse("C", nil, &capacity)
		student := repo.addUser("a@example.com", "sub-a", models.RoleStudent)
		repo.enroll(student.ID, course.ID)

		// Already enrolled AND course full: the fixed order reports full first.
		err := svc.Enroll(ctx, caller(student.ID, student.Role), course.ID)
		if !errors.Is(err, ErrCourseFull) {
			t.Errorf("err = %v, want ErrCourseFull", err)
		}
	})

	t.Run("duplicate enrollment", func(t *testing.T) {
		repo, _, svc := newEnrollmentFixture()
		course := repo.addCourse("C", nil, nil)
		student := repo.addUser("a@example.com", "sub-a", models.RoleStudent)
		repo.enroll(student.ID, course.ID)

		err := svc.Enroll(ctx, caller(student.ID, student.Role), course.ID)
		if !errors.Is(err, ErrAlreadyEnrolled) {
			t.Errorf("err = %v, want ErrAlreadyEnrolled", err)
		}
	})
}

func TestEnrollmentService_Students(t *testing.T) {
	ctx := context.Background()

	t.Run("instructor lists students", func(t *testing.T) {
		repo, _, svc := newEnrollmentFixture()
		course := repo.addCourse("C", nil, nil)
		s1 := repo.addUser("a@example.com", "sub-a", models.RoleStudent)
		s2 := repo.addUser("b@example.com", "sub-b", models.RoleStudent)
		repo.enroll(s1.ID, course.ID)
		repo.enroll(s2.ID, course.ID)

		students, err := svc.Students(ctx, caller(9, models.RoleInstructor), course.ID)
		if err != nil {
			t.Fatalf("Students: %v", err)
		}
		if len(students) != 2 {
			t.Errorf("got %d students, want 2", len(students))
		}
	})

	t.Run("student denied", func(t *testing.T) {
		repo, _, svc := newEnrollmentFixture()
		course := repo.addCourse("C", nil, nil)

		_, err := svc.Students(ctx, caller(1, models.RoleStudent), course.ID)
		var perm *PermissionError
		if !errors.As(err, &perm) {
			t.Errorf("err = %v, want PermissionError", err)
		}
	})

	t.Run("missing course", func(t *testing.T) {
		_, _, svc := newEnrollmentFixture()

		_, err := svc.Students(ctx, caller(1, models.RoleAdmin), 42)
		if !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("err = %v, want ErrCourseNotFound", err)
		}
	})
}
