package middleware

import (
	"context"

	"github.com/keshon/hizollo/internal/command"
)

// Authorizer decides whether a caller may use commands of a category.
type Authorizer interface {
	Authorized(c command.Caller, t command.Type) bool
}

// WithAccessControl hides commands the caller is not authorized for. The
// caller gets the same text an unknown command would produce.
func WithAccessControl(auth Authorizer, notFound func() string) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, inv *command.Invocation) error {
			if inv.Command != nil && !auth.Authorized(inv.Caller, inv.Command.Type) {
				return deny(ctx, inv, notFound())
			}
			return next(ctx, inv)
		}
	}
}
