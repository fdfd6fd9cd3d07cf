package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const ownerCtxKey ctxKey = iota

// OwnerKeys maps an API key to the owner id it authenticates. The hosted
// identity provider sits outside this core; at this boundary a key is the
// session proof and the owner id is what every store operation scopes on.
type OwnerKeys map[string]string

// ParseOwnerKeys parses "key:owner,key2:owner2". Entries without a colon or
// with empty halves are dropped.
func ParseOwnerKeys(raw string) OwnerKeys {
	out := make(OwnerKeys)
	for _, pair := range strings.Split(raw, ",") {
		key, owner, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || key == "" || owner == "" {
			continue
		}
		out[key] = owner
	}
	return out
}

func readAuth(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if k := r.Header.Get("X-API-Key"); k != "" {
		return strings.TrimSpace(k)
	}
	return ""
}

// RequireOwner authenticates the request and stashes the resolved owner id
// in the context. With no keys configured it trusts the X-Owner-ID header
// instead (handy for local dev).
func RequireOwner(keys OwnerKeys) func(http.Handler) http.Handler {
	enabled := len(keys) > 0
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var owner string
			if enabled {
				owner = keys[readAuth(r)]
			} else {
				owner = strings.TrimSpace(r.Header.Get("X-Owner-ID"))
			}
			if owner == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerCtxKey, owner)
}

// Owner returns the authenticated owner id, or "" when the middleware did
// not run.
func Owner(ctx context.Context) string {
	owner, _ := ctx.Value(ownerCtxKey).(string)
	return owner
}
