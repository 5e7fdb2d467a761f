package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mbsnyc/mbsnyc-api/pkg/errors"
	"github.com/mbsnyc/mbsnyc-api/pkg/jwt"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"go.uber.org/zap"
)

// AdminClaimsContextKey stores the validated admin claims in the gin context
const AdminClaimsContextKey = "admin_claims"

// AdminAuthMiddleware requires "Authorization: Bearer <admin JWT>".
// A nil tokenManager leaves the route open.
func AdminAuthMiddleware(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenManager == nil {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			rejectAdmin(c, "Missing bearer token", apperrors.UnauthorizedError("missing bearer token"))
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "Token expired"
			}
			rejectAdmin(c, message, apperrors.UnauthorizedError(err.Error()))
			return
		}

		c.Set(AdminClaimsContextKey, claims)
		c.Next()
	}
}

// GetAdminClaims returns the claims stored by AdminAuthMiddleware
func GetAdminClaims(c *gin.Context) (*jwt.AdminClaims, bool) {
	val, exists := c.Get(AdminClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*jwt.AdminClaims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectAdmin(c *gin.Context, message string, err error) {
	logger.Warn("Admin authentication failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
		zap.Error(err),
	)
	_ = c.Error(err) //nolint:errcheck
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
