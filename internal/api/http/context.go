package http

import (
	"context"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "claims"

func contextWithClaims(ctx context.Context, claims *security.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func claimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.Claims)
	return claims, ok
}

// adminScope extracts the admin identity and pg scope from the request
// context. The auth middleware guarantees the claims are present on
// admin routes.
func adminScope(ctx context.Context) (adminID int32, pgType domain.PGType, ok bool) {
	claims, found := claimsFromContext(ctx)
	if !found || claims.Type != security.TokenTypeAdmin {
		return 0, "", false
	}
	return claims.SubjectID, domain.PGType(claims.PGType), true
}

// memberScope extracts the member identity from the request context.
func memberScope(ctx context.Context) (memberID int32, ok bool) {
	claims, found := claimsFromContext(ctx)
	if !found || claims.Type != security.TokenTypeMember {
		return 0, false
	}
	return claims.SubjectID, true
}
