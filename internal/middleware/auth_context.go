package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-tasks/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader es el header que identifica al usuario en modo dev.
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext resuelve el usuario del request y lo deja en el contexto.
// Con verifier solo cuenta el Bearer token; sin verifier (dev) cuenta DebugUserHeader.
// Nunca corta el request: reminders y pets responden 401 si no hay usuario.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolveClaims(r, verifier); ok {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
		return auth.Claims{UserID: uid}, uid != ""
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil || strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, false
	}
	return claims, true
}

// WithClaims inyecta claims en el contexto (tests y herramientas internas).
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// UserID devuelve el usuario autenticado, o false si no hay uno utilizable.
func UserID(ctx context.Context) (string, bool) {
	c, ok := GetClaims(ctx)
	if !ok || strings.TrimSpace(c.UserID) == "" {
		return "", false
	}
	return c.UserID, true
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
