package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// callerKey is the key used to store the authenticated caller's signature
// in the request context. There is deliberately no process-wide "current
// session" state: the caller identity always travels with the context.
const callerKey = contextKey("caller")

// WithCaller returns a context carrying the authenticated caller signature.
func WithCaller(ctx context.Context, caller domain.UserSignature) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCallerFromCtx retrieves the authenticated caller from a standard
// context. The boolean is false when no caller was authenticated.
func GetCallerFromCtx(ctx context.Context) (domain.UserSignature, bool) {
	caller, ok := ctx.Value(callerKey).(domain.UserSignature)
	return caller, ok
}

// GetCallerFromContext retrieves the authenticated caller from a Gin context.
func GetCallerFromContext(c *gin.Context) (domain.UserSignature, bool) {
	return GetCallerFromCtx(c.Request.Context())
}
