package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	usermodel "marketplace_api/internal/domain/user/model"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	// ContextClaims is the gin context key holding the parsed *utils.Claims.
	ContextClaims = "claims"

	sessionKeyPrefix = "session:"
)

var (
	sessionDB  *gorm.DB
	sessionRDB *redis.Client
)

// Init wires the stores the auth middleware consults for session liveness.
// Must run before any route registration.
func Init(db *gorm.DB, rdb *redis.Client) {
	sessionDB = db
	sessionRDB = rdb
}

// SessionKey is the redis key caching a live session id.
func SessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// AuthMiddleware validates the bearer token and checks the session record
// still exists. A cryptographically valid token whose session was purged
// server-side is answered with 410 Gone.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if err := checkSessionAlive(c.Request.Context(), claims.SessionID); err != nil {
			response.Error(c, http.StatusGone, "Session no longer exists")
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRoles guards a route group to the given roles. Runs after
// AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, http.StatusForbidden, "Permission denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the request claims, or nil outside an authenticated
// route.
func ClaimsFrom(c *gin.Context) *utils.Claims {
	val, exists := c.Get(ContextClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*utils.Claims)
	if !ok {
		return nil
	}
	return claims
}

// checkSessionAlive consults redis first, falling back to the sessions
// table. A DB hit refreshes the redis entry.
func checkSessionAlive(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("missing session id")
	}

	if sessionRDB != nil {
		exists, err := sessionRDB.Exists(ctx, SessionKey(sessionID)).Result()
		if err == nil && exists > 0 {
			return nil
		}
	}

	if sessionDB == nil {
		return errors.New("session store not initialized")
	}

	var session usermodel.Session
	if err := sessionDB.WithContext(ctx).First(&session, "id = ?", sessionID).Error; err != nil {
		return fmt.Errorf("session lookup: %w", err)
	}
	if session.ExpiresAt.Before(time.Now()) {
		return errors.New("session expired")
	}

	if sessionRDB != nil {
		_ = sessionRDB.Set(ctx, SessionKey(sessionID), session.UserID, time.Until(session.ExpiresAt)).Err()
	}
	return nil
}
