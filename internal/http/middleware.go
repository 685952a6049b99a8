package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
)

const principalKey = "principal"

// requestLogger tags every request with an id and logs method/path/status.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	}
}

// tokenAuth validates "Authorization: Token <key>" headers against the token
// store and puts the resolved account into the request context.
func (h *Handler) tokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Token ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		key := strings.TrimSpace(strings.TrimPrefix(header, "Token "))

		user, err := h.users.GetUserByToken(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// staffOnly requires an authenticated staff account.
func staffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(principalKey)
		user, _ := v.(*domain.User)
		if !exists || user == nil || !user.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			return
		}
		c.Next()
	}
}
