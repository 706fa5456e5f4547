// Package http provides the session endpoints and the Hawk authentication middleware.
package http

import (
	"context"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
)

// assertionKey is a context key type for storing verified assertions.
type assertionKey struct{}

// WithAssertion stores a verified credential assertion in the context.
func WithAssertion(ctx context.Context, assertion *credentialDomain.Assertion) context.Context {
	return context.WithValue(ctx, assertionKey{}, assertion)
}

// GetAssertion retrieves the verified credential assertion from the context.
func GetAssertion(ctx context.Context) (*credentialDomain.Assertion, bool) {
	assertion, ok := ctx.Value(assertionKey{}).(*credentialDomain.Assertion)
	return assertion, ok && assertion != nil
}
