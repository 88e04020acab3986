package httpx

import "context"

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// WithPrincipal stores the authenticated principal in ctx.
func WithPrincipal[T any](ctx context.Context, p T) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFrom returns the principal stored by AuthnMiddleware.
func PrincipalFrom[T any](ctx context.Context) (T, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(T)
	return p, ok
}
