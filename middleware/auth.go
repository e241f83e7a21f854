package middleware

import (
	"net/http"
	"strings"

	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AuthCookie   = "auth_token"
	principalKey = "principal"

	// UserIDKey holds the authenticated user's id as a string.
	UserIDKey = "userID"
)

// bearerToken reads the token from the auth cookie, then the x-auth-token
// header, then the Authorization header. ok is false when the Authorization
// header is present but malformed.
func bearerToken(c *gin.Context) (token string, ok bool) {
	if cookie, err := c.Cookie(AuthCookie); err == nil && cookie != "" {
		return cookie, true
	}
	if raw := c.GetHeader("x-auth-token"); raw != "" {
		return raw, true
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", true
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func verify(token string) (models.Principal, bool) {
	svc := services.GetJWTService()
	if svc == nil {
		return models.Anonymous, false
	}
	claims, err := svc.Verify(token)
	if err != nil {
		return models.Anonymous, false
	}
	return claims.Principal(), true
}

// AuthMiddleware validates JWT token from cookie or Authorization header
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
			return
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authorization header required"))
			return
		}

		principal, valid := verify(token)
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			return
		}

		c.Set(principalKey, principal)
		c.Set(UserIDKey, principal.UserID)
		c.Next()
	}
}

// OptionalAuth resolves the principal when a valid token is present and
// treats the caller as a guest otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := models.Anonymous
		if token, ok := bearerToken(c); ok && token != "" {
			if p, valid := verify(token); valid {
				principal = p
			}
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the caller set by AuthMiddleware or
// OptionalAuth. Requests that passed neither are anonymous.
func PrincipalFromContext(c *gin.Context) models.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Anonymous
}

// CurrentUserID parses the id stored by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	s, _ := raw.(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
