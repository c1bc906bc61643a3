package auth

import "context"

type contextKey struct{}

// Claims is the verified identity attached to a request after the bearer
// token checks out. Subject is the user id the token was issued for.
type Claims struct {
	Subject string
	Email   string
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func FromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(Claims)
	return c, ok
}

// Subject returns the authenticated user id, or "" when the request
// carries no verified claims.
func Subject(ctx context.Context) string {
	c, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return c.Subject
}
