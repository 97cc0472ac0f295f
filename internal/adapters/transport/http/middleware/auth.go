package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/halitkalayci/gyk-backend/internal/app/auth/service"
	"github.com/halitkalayci/gyk-backend/internal/domain/user"
)

// CurrentUserKey is the gin context key holding the resolved user.
const CurrentUserKey = "currentUser"

// RequireAuth resolves the bearer token into a user record before the
// handler runs. Malformed, expired and subject-less tokens, as well as
// tokens for deleted accounts, all produce the same 401; the exact failure
// kind only reaches the log.
func RequireAuth(authSvc service.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := authSvc.CurrentUser(c.Request.Context(), raw)
		if err != nil {
			log.Debug("current user resolution failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(CurrentUserKey, u)
		c.Next()
	}
}

// UserFromContext returns the user stored by RequireAuth.
func UserFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
