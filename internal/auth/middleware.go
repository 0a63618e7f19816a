package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/user"
	"github.com/Nobirs/FoodTracker/internal/utils"
)

// Middleware is the auth guard: it extracts a bearer access token, verifies
// it, resolves the subject to a live account and puts it in the context.
// Every handler that touches user-owned data runs behind it.
func Middleware(users user.Service, codec *utils.TokenCodec, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			return
		}

		claims, err := codec.Verify(parts[1])
		if err != nil {
			logger.Warn("access token verification failed", zap.Error(err))
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Subject and email must match one record jointly; a token minted
		// for an account that no longer exists resolves to nothing.
		u, err := users.ReadUserByNameAndEmail(c.Request.Context(), claims.Subject, claims.Email)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			logger.Error("failed to resolve token subject", zap.Error(err), zap.String("subject", claims.Subject))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not validate user"})
			return
		}

		c.Set(user.ContextUserKey, u)
		c.Next()
	}
}

// CurrentUser pulls the guard-resolved account out of the context.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	raw, exists := c.Get(user.ContextUserKey)
	if !exists {
		return nil, false
	}
	u, ok := raw.(*user.User)
	return u, ok
}
