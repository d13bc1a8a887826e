// Package auth verifies the bearer tokens a hardware bridge presents when it
// pushes telemetry. Tokens are HS256 JWTs signed with a shared secret and
// must carry the "telemetry:push" scope.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const ScopePush = "telemetry:push"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingScope = errors.New("token lacks telemetry:push scope")
)

// Claims are the parsed token claims.
type Claims struct {
	Subject string
	Scopes  []string
}

type claimsKey struct{}

// Verifier checks HS256 tokens against a shared secret. A Verifier with an
// empty secret accepts every request.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether tokens are required.
func (v *Verifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// VerifyToken parses the token and checks signature, expiry and scope.
func (v *Verifier) VerifyToken(tokenString string) (*Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, _ := claims.GetSubject()
	out := &Claims{Subject: subject, Scopes: scopes(claims)}
	if !out.HasScope(ScopePush) {
		return nil, ErrMissingScope
	}
	return out, nil
}

// VerifyHeader verifies an "Authorization: Bearer <token>" value. When the
// verifier is disabled it returns nil claims and no error.
func (v *Verifier) VerifyHeader(header string) (*Claims, error) {
	if !v.Enabled() {
		return nil, nil
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	return v.VerifyToken(strings.TrimSpace(token))
}

// Middleware rejects requests without a valid push token.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := v.VerifyHeader(r.Header.Get("Authorization"))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("WWW-Authenticate", `Bearer realm="netmonitor"`)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = fmt.Fprintf(w, "{\"error\":%q,\"code\":%d}\n", err.Error(), http.StatusUnauthorized)
			return
		}
		if claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns claims stored by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}

func (c *Claims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// scopes accepts either a space separated "scope" string or a "scopes" array.
func scopes(claims jwt.MapClaims) []string {
	if raw, ok := claims["scope"].(string); ok {
		return strings.Fields(raw)
	}
	list, ok := claims["scopes"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
