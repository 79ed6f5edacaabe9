package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/repositories/casdoor"
)

// mockIdentity is an in-memory IdentityRepository.
type mockIdentity struct {
	// tokens maps bearer tokens to subject ids.
	tokens map[string]string
	// profiles maps subject ids to provider profiles.
	profiles map[string]*repositories.IdentityProfile
	// passwords maps email to password for Login.
	passwords map[string]string

	resetRequests []string
	loginErr      error
}

func newMockIdentity() *mockIdentity {
	return &mockIdentity{
		tokens:    make(map[string]string),
		profiles:  make(map[string]*repositories.IdentityProfile),
		passwords: make(map[string]string),
	}
}

func (m *mockIdentity) VerifyToken(ctx context.Context, token string) (*repositories.IdentityClaims, error) {
	subject, ok := m.tokens[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	claims := &repositories.IdentityClaims{Subject: subject}
	if p, ok := m.profiles[subject]; ok {
		claims.Email = p.Email
		claims.Name = p.DisplayName
	}
	return claims, nil
}

func (m *mockIdentity) GetProfile(ctx context.Context, subject string) (*repositories.IdentityProfile, error) {
	if p, ok := m.profiles[subject]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("identity provider has no user with subject %s", subject)
}

func (m *mockIdentity) Login(ctx context.Context, email, password string) (string, error) {
	if m.loginErr != nil {
		return "", m.loginErr
	}
	if m.passwords[email] != password || password == "" {
		return "", casdoor.ErrInvalidCredentials
	}
	return "token-for-" + email, nil
}

func (m *mockIdentity) SendPasswordReset(ctx context.Context, email string) error {
	m.resetRequests = append(m.resetRequests, email)
	return nil
}

// mockStore is an in-memory ObjectStore.
type mockStore struct {
	objects map[string][]byte

	uploadErr error
	signErr   error
}

func newMockStore() *mockStore {
	return &mockStore{objects: make(map[string][]byte)}
}

func (m *mockStore) Upload(ctx context.Context, key, contentType string, data io.Reader) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.objects[key] = b
	return nil
}

func (m *mockStore) SignedURL(key string, expires time.Duration) (string, error) {
	if m.signErr != nil {
		return "", m.signErr
	}
	return "https://storage.test/" + key + "?sig=abc", nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *mockStore) Close() error { return nil }
