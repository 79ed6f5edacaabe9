package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/services"
)

// AuthMiddleware resolves the caller behind a bearer token on every request.
// Role and ownership are read fresh from the database; nothing is cached
// between requests.
type AuthMiddleware struct {
	auth services.AuthService
}

func NewAuthMiddleware(auth services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth rejects requests without a valid bearer token and a matching
// local account, and stores the resolved caller in the gin context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header missing or malformed",
			})
			c.Abort()
			return
		}

		caller, err := am.auth.ResolveCaller(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnauthenticated):
				c.JSON(http.StatusUnauthorized, ErrorResponse{
					Message: "Invalid or expired token",
				})
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusNotFound, ErrorResponse{
					Message: "No local account for this identity",
				})
			default:
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal server error",
				})
			}
			c.Abort()
			return
		}

		c.Set("caller", caller)
		c.Set("user_id", caller.ID())
		c.Set("user_role", caller.Role())

		c.Next()
	}
}

// OptionalAuth resolves the caller when a token is present but lets anonymous
// requests through. Used on public course endpoints so responses can include
// caller-specific fields.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if caller, err := am.auth.ResolveCaller(c.Request.Context(), token); err == nil {
			c.Set("caller", caller)
			c.Set("user_id", caller.ID())
			c.Set("user_role", caller.Role())
		}

		c.Next()
	}
}

// RequireRole checks if the resolved caller has one of the required roles.
// Admin always passes.
func (am *AuthMiddleware) RequireRole(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "User role not found in context",
			})
			c.Abort()
			return
		}

		userRole, ok := role.(models.UserRole)
		if !ok {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Invalid user role format",
			})
			c.Abort()
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if userRole == requiredRole || userRole == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: fmt.Sprintf("Insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	return parts[1], true
}

// GetCallerFromContext extracts the resolved caller from the gin context.
func GetCallerFromContext(c *gin.Context) (*services.Caller, error) {
	v, exists := c.Get("caller")
	if !exists {
		return nil, fmt.Errorf("caller not found in context")
	}

	caller, ok := v.(*services.Caller)
	if !ok {
		return nil, fmt.Errorf("invalid caller type in context")
	}

	return caller, nil
}

// optionalCaller returns the caller or nil for anonymous requests.
func optionalCaller(c *gin.Context) *services.Caller {
	caller, err := GetCallerFromContext(c)
	if err != nil {
		return nil
	}
	return caller
}
