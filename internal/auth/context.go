package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries the owner id resolved by the identity provider.
const HeaderUserID = "X-User-Id"

type ctxKey struct{}

// WithOwnerID returns a context carrying the resolved owner id.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ownerID)
}

// GetOwnerID returns the owner id and whether identity was resolved.
func GetOwnerID(ctx context.Context) (string, bool) {
	if val, ok := ctx.Value(ctxKey{}).(string); ok && val != "" {
		return val, true
	}
	return "", false
}

// OwnerFromGin reads the owner id placed on the request by ContextMiddleware.
func OwnerFromGin(c *gin.Context) (string, bool) {
	return GetOwnerID(c.Request.Context())
}

// ContextMiddleware copies the X-User-Id header into the request context.
// It does not reject anonymous requests; handlers decide.
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(HeaderUserID)); id != "" {
			c.Request = c.Request.WithContext(WithOwnerID(c.Request.Context(), id))
		}
		c.Next()
	}
}
