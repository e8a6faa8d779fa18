package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/customer-api/auth/authctx"
	"github.com/skillsenselab/customer-api/auth/token"
	apperrors "github.com/skillsenselab/customer-api/errors"
)

// Auth returns a Gin middleware that requires a valid bearer token. On
// success the verified identity is attached to the request context; on any
// failure the request is rejected with 401 and the handler never runs.
//
// The middleware trusts the token's signature and makes no store lookups,
// so a deleted user's tokens stay valid until they expire.
func Auth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthenticated(c, "Invalid authorization header format")
			return
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			abortUnauthenticated(c, "Invalid token")
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), identity))
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, reason string) {
	appErr := apperrors.Unauthenticated(reason)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
