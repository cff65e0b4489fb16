// Package auth guards the API with a shared key, with optional bearer
// tokens as an alternative credential.
package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const apiKeyHeader = "X-API-KEY"

// RequireAPIKey authenticates every request with the X-API-KEY header.
// When jwtSecret is non-empty, a valid HS256 bearer token is accepted
// instead. An unset server key is a deployment fault: the server cannot
// authenticate anyone and says so rather than letting requests through.
func RequireAPIKey(apiKey, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			slog.Error("FATAL: API key is not configured, cannot authenticate requests")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			return
		}

		if supplied := c.GetHeader(apiKeyHeader); supplied != "" &&
			subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) == 1 {
			c.Next()
			return
		}

		if jwtSecret != "" && validBearer(c.GetHeader("Authorization"), jwtSecret) {
			c.Next()
			return
		}

		slog.Warn("unauthorized access attempt", "ip", c.ClientIP(), "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

func validBearer(header, secret string) bool {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return false
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	return err == nil && parsed.Valid
}
