package middleware

import (
	"context"
	"strings"

	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key holding verified token claims.
const ClaimsKey = "claims"

// Token is a verified token that can expose its claims.
type Token interface {
	Claims(v interface{}) error
}

// Verifier checks a raw bearer token.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// AdminOnly rejects requests without a valid bearer token. A nil verifier
// leaves the route open.
func AdminOnly(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ver == nil {
			c.Next()
			return
		}
		auth := c.GetHeader("Authorization")
		if auth == "" {
			reject(c, apperror.NewUnauthorized("Missing Authorization header", nil))
			return
		}
		scheme, token, ok := strings.Cut(auth, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			reject(c, apperror.NewUnauthorized("Invalid Authorization header", nil))
			return
		}

		verified, err := ver.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			reject(c, apperror.NewUnauthorized("Invalid token", err))
			return
		}
		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			reject(c, apperror.NewUnauthorized("Invalid token", err))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func reject(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperror.ToHTTPStatus(err), gin.H{"message": apperror.Message(err)})
}
