package http

import (
	"net/http"
	"strings"

	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/security"
)

// AuthMiddleware validates bearer tokens and enforces the token type per
// route group (admin vs member).
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*security.Claims, int, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, http.StatusUnauthorized, "missing authorization header"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, http.StatusUnauthorized, "malformed authorization header"
	}

	claims, err := m.tokens.ValidateToken(parts[1])
	if err != nil {
		return nil, http.StatusUnauthorized, err.Error()
	}
	return claims, 0, ""
}

func (m *AuthMiddleware) require(tokenType security.TokenType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, status, msg := m.authenticate(r)
			if claims == nil {
				writeError(w, status, msg)
				return
			}
			if claims.Type != tokenType {
				logger.Warn("Token type mismatch", "want", tokenType, "got", claims.Type, "path", r.URL.Path)
				writeError(w, http.StatusForbidden, security.ErrWrongTokenType.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin guards admin-token routes.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.require(security.TokenTypeAdmin)(next)
}

// RequireMember guards member-token routes.
func (m *AuthMiddleware) RequireMember(next http.Handler) http.Handler {
	return m.require(security.TokenTypeMember)(next)
}

// RequireAny guards routes both token types may call (file downloads).
func (m *AuthMiddleware) RequireAny(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, status, msg := m.authenticate(r)
		if claims == nil {
			writeError(w, status, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), claims)))
	})
}
