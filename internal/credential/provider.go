// Package credential supplies the bearer token attached to outgoing backend
// requests. A missing token is a valid state; only a failing lookup is an error.
package credential

import (
	"context"
)

// TokenKey is the key the bearer token is persisted under.
const TokenKey = "token"

// Provider returns the current bearer token. ok is false when no token is
// stored; err is reserved for lookups that could not be performed.
type Provider interface {
	Token(ctx context.Context) (token string, ok bool, err error)
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(ctx context.Context) (string, bool, error)

func (f ProviderFunc) Token(ctx context.Context) (string, bool, error) {
	return f(ctx)
}

// Store is a persisted key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// StoreProvider reads TokenKey from store on every call. Nothing is cached so
// a token written by another process is picked up by the next request, at
// the cost of one store round trip per request.
func StoreProvider(store Store) Provider {
	return ProviderFunc(func(ctx context.Context) (string, bool, error) {
		val, ok, err := store.Get(ctx, TokenKey)
		if err != nil {
			return "", false, err
		}
		if !ok || val == "" {
			return "", false, nil
		}
		return val, true, nil
	})
}

// Static always returns token. An empty token means "no credential".
func Static(token string) Provider {
	return ProviderFunc(func(context.Context) (string, bool, error) {
		return token, token != "", nil
	})
}

// None never returns a credential.
func None() Provider {
	return Static("")
}

type tokenCtxKey struct{}

// WithToken attaches a request-scoped token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// TokenFromContext returns the token attached by WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenCtxKey{}).(string)
	return tok, ok && tok != ""
}

// ContextProvider prefers a token carried on the request context and falls
// back to the given provider otherwise. A nil fallback means no credential.
func ContextProvider(fallback Provider) Provider {
	return ProviderFunc(func(ctx context.Context) (string, bool, error) {
		if tok, ok := TokenFromContext(ctx); ok {
			return tok, true, nil
		}
		if fallback == nil {
			return "", false, nil
		}
		return fallback.Token(ctx)
	})
}
