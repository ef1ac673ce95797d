// Package auth provides authentication middleware for the RSTUF API server.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/enyinna1234/repository-service-tuf-api/internal/config"
	"github.com/enyinna1234/repository-service-tuf-api/internal/logger"
)

// Scopes recognized by the API boundary
const (
	// ScopeReadBootstrap allows reading the bootstrap state
	ScopeReadBootstrap = "read:bootstrap"

	// ScopeWriteBootstrap allows triggering a bootstrap
	ScopeWriteBootstrap = "write:bootstrap"

	// ScopeReadTasks allows querying task status
	ScopeReadTasks = "read:tasks"
)

// RFC 6750 Section 3 error codes
const (
	// errorCodeInvalidRequest indicates the request is missing a required parameter,
	// includes an unsupported parameter or parameter value, or is otherwise malformed.
	errorCodeInvalidRequest = "invalid_request"

	// errorCodeInvalidToken indicates the access token provided is expired, revoked,
	// malformed, or invalid for other reasons.
	errorCodeInvalidToken = "invalid_token"

	// errorCodeInsufficientScope indicates the token lacks a scope the route demands
	errorCodeInsufficientScope = "insufficient_scope"
)

// defaultRealm is the default protection space identifier
const defaultRealm = "rstuf-api"

// Claims carries the validated caller identity through the request context
type Claims struct {
	// Subject identifies the caller
	Subject string

	// Scopes are the operations the token grants
	Scopes []string
}

// HasScope reports whether the claims grant the given scope
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

type contextKey struct{}

// ClaimsFromContext returns the validated claims stored by the token
// middleware, if any
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// tokenMiddleware validates HMAC-signed bearer tokens
type tokenMiddleware struct {
	secret []byte
	realm  string
}

// NewTokenMiddleware creates the bearer token validation middleware from the
// auth configuration. The returned middleware rejects requests without a
// valid token and stores the claims in the request context.
func NewTokenMiddleware(cfg *config.AuthConfig) (func(http.Handler) http.Handler, error) {
	secret, err := cfg.GetSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to build token middleware: %w", err)
	}

	realm := cfg.Realm
	if realm == "" {
		realm = defaultRealm
	}

	m := &tokenMiddleware{
		secret: secret,
		realm:  realm,
	}
	return m.middleware, nil
}

func (m *tokenMiddleware) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			logger.Warnf("Token extraction failed: %v (remote=%s path=%s)", err, r.RemoteAddr, r.URL.Path)
			m.writeError(w, http.StatusUnauthorized, errorCodeInvalidRequest, "missing or malformed authorization header")
			return
		}

		claims, err := m.validateToken(token)
		if err != nil {
			logger.Warnf("Token validation failed: %v (remote=%s path=%s)", err, r.RemoteAddr, r.URL.Path)
			m.writeError(w, http.StatusUnauthorized, errorCodeInvalidToken, "token validation failed")
			return
		}

		logger.Debugf("Authentication successful for subject %s on %s", claims.Subject, r.URL.Path)
		ctx := context.WithValue(r.Context(), contextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateToken parses and verifies the token and extracts the claims
func (m *tokenMiddleware) validateToken(token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	subject, _ := mapClaims.GetSubject()
	return &Claims{
		Subject: subject,
		Scopes:  extractScopes(mapClaims),
	}, nil
}

// extractScopes reads the scopes claim, accepting both the JSON list form and
// the space-delimited OAuth "scope" string form
func extractScopes(claims jwt.MapClaims) []string {
	if raw, ok := claims["scopes"]; ok {
		if list, ok := raw.([]any); ok {
			scopes := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok {
					scopes = append(scopes, s)
				}
			}
			return scopes
		}
	}

	if raw, ok := claims["scope"].(string); ok && raw != "" {
		return strings.Fields(raw)
	}
	return nil
}

// extractBearerToken extracts the token from the Authorization header
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("authorization header missing")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("authorization header is not a bearer token")
	}
	return token, nil
}

// RequireScopes returns a middleware enforcing that the validated token
// grants every listed scope. Requests that carry no claims pass through:
// that only happens when token validation is disabled entirely.
func RequireScopes(scopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			for _, scope := range scopes {
				if !claims.HasScope(scope) {
					logger.Warnf("Subject %s lacks scope %s for %s", claims.Subject, scope, r.URL.Path)
					writeScopeError(w, scope)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WrapWithPublicPaths wraps an auth middleware to bypass authentication for
// public paths. Requests to public paths go straight to the next handler;
// everything else goes through the auth middleware.
func WrapWithPublicPaths(authMiddleware func(http.Handler) http.Handler, publicPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		authed := authMiddleware(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path, publicPaths) {
				next.ServeHTTP(w, r)
				return
			}
			authed.ServeHTTP(w, r)
		})
	}
}

// isPublicPath reports whether the request path matches a public path prefix
func isPublicPath(path string, publicPaths []string) bool {
	for _, public := range publicPaths {
		if path == public || strings.HasPrefix(path, public+"/") {
			return true
		}
	}
	return false
}

// sanitizeHeaderValue removes characters that could enable header injection attacks.
// This includes newlines, carriage returns, and unescaped quotes.
func sanitizeHeaderValue(s string) string {
	// Fast path: no sanitization needed
	if !strings.ContainsAny(s, "\r\n\"") {
		return s
	}
	// Remove CR and LF to prevent header injection
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	// Escape quotes for use in quoted-string (RFC 7230)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// writeError writes a JSON error response with an RFC 6750 compliant
// WWW-Authenticate header
func (m *tokenMiddleware) writeError(w http.ResponseWriter, status int, errCode, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(
		`Bearer realm="%s", error="%s", error_description="%s"`,
		sanitizeHeaderValue(m.realm), errCode, sanitizeHeaderValue(description)))
	w.WriteHeader(status)

	resp := struct {
		Error string `json:"error"`
	}{
		Error: description,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("Failed to encode auth error response: %v", err)
	}
}

// writeScopeError writes the RFC 6750 insufficient_scope response
func writeScopeError(w http.ResponseWriter, scope string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(
		`Bearer error="%s", scope="%s"`, errorCodeInsufficientScope, sanitizeHeaderValue(scope)))
	w.WriteHeader(http.StatusForbidden)

	resp := struct {
		Error string `json:"error"`
	}{
		Error: fmt.Sprintf("token does not grant required scope %s", scope),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("Failed to encode scope error response: %v", err)
	}
}
