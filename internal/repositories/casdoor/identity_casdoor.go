package casdoor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// ErrInvalidCredentials is returned when the identity provider rejects a login.
var ErrInvalidCredentials = errors.New("identity provider rejected credentials")

type IdentityCasdoor struct {
	client       *casdoorsdk.Client
	httpClient   *http.Client
	profileCache *cache.CacheHelper
	config       CasdoorConfig
}

func NewIdentityCasdoor(config CasdoorConfig, redisClient *redis.Client) repositories.IdentityRepository {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &IdentityCasdoor{
		client:       client,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		profileCache: cache.NewCacheHelper(redisClient, cache.ProfileCacheConfig),
		config:       config,
	}
}

// ===== CACHE METHODS =====

func (c *IdentityCasdoor) getProfileFromCache(ctx context.Context, subject string) (*repositories.IdentityProfile, error) {
	var profile repositories.IdentityProfile
	err := c.profileCache.Get(ctx, subject, &profile)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) || errors.Is(err, cache.ErrCacheNotAvailable) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

func (c *IdentityCasdoor) setProfileCache(ctx context.Context, profile *repositories.IdentityProfile) error {
	return c.profileCache.Set(ctx, profile.Subject, profile)
}

// ===== TOKEN OPERATIONS =====

// VerifyToken parses and verifies a bearer token issued by the provider and
// returns the embedded identity claims.
func (c *IdentityCasdoor) VerifyToken(ctx context.Context, token string) (*repositories.IdentityClaims, error) {
	claims, err := c.client.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	subject := claims.User.Id
	if subject == "" {
		subject = claims.Subject
	}

	return &repositories.IdentityClaims{
		Subject: subject,
		Email:   claims.User.Email,
		Name:    claims.User.DisplayName,
	}, nil
}

// Login exchanges email/password for an identity token using the provider's
// resource-owner password grant. Invalid credentials map to
// ErrInvalidCredentials so handlers can answer 401 instead of 500.
func (c *IdentityCasdoor) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.config.ClientID)
	form.Set("client_secret", c.config.ClientSecret)
	form.Set("username", email)
	form.Set("password", password)

	endpoint := strings.TrimRight(c.config.Endpoint, "/") + "/api/login/oauth/access_token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach identity provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read identity provider response: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var tokenResp struct {
		IDToken     string `json:"id_token"`
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResp.Error != "" {
		return "", ErrInvalidCredentials
	}

	token := tokenResp.IDToken
	if token == "" {
		token = tokenResp.AccessToken
	}
	if token == "" {
		return "", fmt.Errorf("identity provider returned no token")
	}

	return token, nil
}

// ===== PROFILE OPERATIONS =====

// GetProfile looks up the provider-side profile for a subject id, with a
// short-lived Redis cache in front of the provider API.
func (c *IdentityCasdoor) GetProfile(ctx context.Context, subject string) (*repositories.IdentityProfile, error) {
	if cached, err := c.getProfileFromCache(ctx, subject); err == nil && cached != nil {
		return cached, nil
	}

	casdoorUser, err := c.client.GetUserByUserId(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from Casdoor: %w", err)
	}

	if casdoorUser == nil {
		return nil, fmt.Errorf("identity provider has no user with subject %s", subject)
	}

	profile := &repositories.IdentityProfile{
		Subject:     casdoorUser.Id,
		Email:       casdoorUser.Email,
		DisplayName: casdoorUser.DisplayName,
	}

	if err := c.setProfileCache(ctx, profile); err != nil {
		slog.WarnContext(ctx, "Failed to cache identity profile", "error", err, "subject", subject)
	}

	return profile, nil
}

// SendPasswordReset asks the provider to start its reset flow for the given
// email. Callers treat failures as best-effort.
func (c *IdentityCasdoor) SendPasswordReset(ctx context.Context, email string) error {
	form := url.Values{}
	form.Set("type", "email")
	form.Set("dest", email)
	form.Set("method", "forget")
	form.Set("applicationId", fmt.Sprintf("admin/%s", c.config.ApplicationName))

	endpoint := strings.TrimRight(c.config.Endpoint, "/") + "/api/send-verification-code"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build reset request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	return nil
}
