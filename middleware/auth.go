package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"dailylog/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	teamLeaderIDKey = "team_leader_id"
	teamLeaderKey   = "team_leader"
)

// TeamLeaderLookup resolves an API key to its team leader.
type TeamLeaderLookup interface {
	GetTeamLeaderByAPIKey(ctx context.Context, apiKey string) (*models.TeamLeader, error)
}

// AuthRequired accepts a team leader's API key as a Bearer token.
func AuthRequired(lookup TeamLeaderLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey, ok := bearerToken(c)
		if !ok {
			return
		}

		// Validate API key against database
		leader, err := lookup.GetTeamLeaderByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			c.Abort()
			return
		}

		// Store team leader in context for handlers to use
		c.Set(teamLeaderIDKey, leader.ID)
		c.Set(teamLeaderKey, leader)

		c.Next()
	}
}

// AdminRequired accepts only the configured admin token. An empty token disables
// the admin routes entirely.
func AdminRequired(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access disabled"})
			c.Abort()
			return
		}

		given, ok := bearerToken(c)
		if !ok {
			return
		}
		if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// TeamLeaderID returns the authenticated team leader, or nil on unauthenticated routes.
func TeamLeaderID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(teamLeaderIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
		c.Abort()
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
		c.Abort()
		return "", false
	}

	return parts[1], true
}
