package middleware

import "context"

// Principal is the authenticated caller as seen by a downstream service.
// It carries the role only; the token itself never leaves the interceptor.
type Principal struct {
	Role string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
