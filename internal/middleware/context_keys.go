package middleware

import (
	"context"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

const callerKey = contextKey("caller")

// WithCaller attaches the authenticated caller to the context. Exposed for
// the auth middleware and for tests.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCallerFromCtx retrieves the authenticated caller from the context. The
// second return is false when no auth middleware ran.
func GetCallerFromCtx(ctx context.Context) (domain.Caller, bool) {
	if ctx == nil {
		return domain.Caller{}, false
	}
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}
