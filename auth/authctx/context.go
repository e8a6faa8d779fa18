// Package authctx propagates the verified request identity through
// context.Context without exposing the context key.
package authctx

import (
	"context"

	"github.com/skillsenselab/customer-api/auth/token"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var identityKey = contextKey{}

// Set stores the verified identity in the context.
func Set(ctx context.Context, id token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Get retrieves the verified identity from the context. The second return
// is false when the request did not pass through the auth middleware.
func Get(ctx context.Context) (token.Identity, bool) {
	id, ok := ctx.Value(identityKey).(token.Identity)
	return id, ok
}

// MustGet retrieves the verified identity, panicking if it is absent. Use
// only in handlers registered behind the auth middleware.
func MustGet(ctx context.Context) token.Identity {
	id, ok := Get(ctx)
	if !ok {
		panic("authctx: no identity in context")
	}
	return id
}
