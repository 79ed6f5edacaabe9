package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthFixture() (*mockRepository, *mockIdentity, *events.MockEventPublisher, AuthService) {
	repo := newMockRepository()
	identity := newMockIdentity()
	publisher := events.NewMockEventPublisher()
	svc := NewAuthService(repo, identity, publisher, testLogger(), validator.NewValidator())
	return repo, identity, publisher, svc
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates student account and publishes event", func(t *testing.T) {
		repo, identity, publisher, svc := newAuthFixture()
		identity.profiles["sub-1"] = &repositories.IdentityProfile{Subject: "sub-1", Email: "a@example.com"}

		user, err := svc.Signup(ctx, &SignupRequest{Email: "a@example.com", CasdoorID: "sub-1"})
		if err != nil {
			t.Fatalf("Signup: %v", err)
		}
		if user.Role != models.RoleStudent {
			t.Errorf("new user role = %s, want student", user.Role)
		}
		if user.ID == 0 {
			t.Error("expected assigned id")
		}
		if _, err := repo.User().GetByEmail(ctx, "a@example.com"); err != nil {
			t.Errorf("user not persisted: %v", err)
		}

		evts := publisher.GetPublishedEvents()
		if len(evts) != 1 || evts[0].Type != events.TopicUserSignedUp {
			t.Errorf("expected one %s event, got %+v", events.TopicUserSignedUp, evts)
		}
	})

	t.Run("missing provider profile does not block signup", func(t *testing.T) {
		_, _, _, svc := newAuthFixture()

		if _, err := svc.Signup(ctx, &SignupRequest{Email: "b@example.com", CasdoorID: "sub-unknown"}); err != nil {
			t.Fatalf("Signup: %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, _, _, svc := newAuthFixture()
		repo.addUser("dup@example.com", "sub-x", models.RoleStudent)

		_, err := svc.Signup(ctx, &SignupRequest{Email: "dup@example.com", CasdoorID: "sub-y"})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("err = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("duplicate casdoor id", func(t *testing.T) {
		repo, _, _, svc := newAuthFixture()
		repo.addUser("one@example.com", "sub-dup", models.RoleStudent)

		_, err := svc.Signup(ctx, &SignupRequest{Email: "two@example.com", CasdoorID: "sub-dup"})
		if !errors.Is(err, ErrCasdoorIDTaken) {
			t.Errorf("err = %v, want ErrCasdoorIDTaken", err)
		}
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, _, _, svc := newAuthFixture()

		_, err := svc.Signup(ctx, &SignupRequest{Email: "not-an-email", CasdoorID: "sub-z"})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("err = %v, want ValidationErrors", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns provider token", func(t *testing.T) {
		_, identity, _, svc := newAuthFixture()
		identity.passwords["a@example.com"] = "secret"

		resp, err := svc.Login(ctx, &LoginRequest{Username: "a@example.com", Password: "secret"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if resp.IDToken == "" {
			t.Error("expected non-empty id_token")
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, identity, _, svc := newAuthFixture()
		identity.passwords["a@example.com"] = "secret"

		_, err := svc.Login(ctx, &LoginRequest{Username: "a@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("provider outage surfaces as upstream error", func(t *testing.T) {
		_, identity, _, svc := newAuthFixture()
		identity.loginErr = errors.New("connection refused")

		_, err := svc.Login(ctx, &LoginRequest{Username: "a@example.com", Password: "secret"})
		var upstream *UpstreamError
		if !errors.As(err, &upstream) {
			t.Errorf("err = %v, want UpstreamError", err)
		}
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("always succeeds for unknown email", func(t *testing.T) {
		_, identity, _, svc := newAuthFixture()

		if err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "ghost@example.com"}); err != nil {
			t.Fatalf("ForgotPassword: %v", err)
		}
		if len(identity.resetRequests) != 1 {
			t.Errorf("expected one reset request, got %d", len(identity.resetRequests))
		}
	})
}

func TestAuthService_ResolveCaller(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves user with enrollments", func(t *testing.T) {
		repo, identity, _, svc := newAuthFixture()
		u := repo.addUser("a@example.com", "sub-1", models.RoleStudent)
		c := repo.addCourse("Go 101", nil, nil)
		repo.enroll(u.ID, c.ID)
		identity.tokens["tok"] = "sub-1"

		caller, err := svc.ResolveCaller(ctx, "tok")
		if err != nil {
			t.Fatalf("ResolveCaller: %v", err)
		}
		if caller.ID() != u.ID {
			t.Errorf("caller id = %d, want %d", caller.ID(), u.ID)
		}
		if len(caller.EnrolledCourseIDs) != 1 || caller.EnrolledCourseIDs[0] != c.ID {
			t.Errorf("enrolled ids = %v", caller.EnrolledCourseIDs)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		_, _, _, svc := newAuthFixture()

		_, err := svc.ResolveCaller(ctx, "")
		if !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("err = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		_, _, _, svc := newAuthFixture()

		_, err := svc.ResolveCaller(ctx, "garbage")
		if !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("err = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("verified subject without local account", func(t *testing.T) {
		_, identity, _, svc := newAuthFixture()
		identity.tokens["tok"] = "sub-nolocal"

		_, err := svc.ResolveCaller(ctx, "tok")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})
}
