package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/foxsrv/companyeconomy/internal/model"
	"github.com/foxsrv/companyeconomy/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

// TokenValidator defines the interface for token validation
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// ClaimsKey is the context key for JWT claims
const ClaimsKey contextKey = "claims"

// Auth returns a middleware that validates JWT tokens and puts the
// acting player into the request context
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, problem := validateRequest(validator, r)
			if problem != nil {
				problem.WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), PlayerIDKey, claims.PlayerID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly requires admin claims. Use after Auth, or standalone; it
// validates the token itself so admin routes cannot be misassembled
// into an unauthenticated chain.
func AdminOnly(validator TokenValidator) Middleware {
	return requireRole(validator, func(c *jwt.Claims) bool { return c.IsAdmin() },
		"admin access required")
}

// BridgeOnly requires bridge (or admin) claims. The game server uses a
// bridge token to report presence.
func BridgeOnly(validator TokenValidator) Middleware {
	return requireRole(validator, func(c *jwt.Claims) bool { return c.IsBridge() },
		"bridge access required")
}

// BridgeAuth admits the game server. It accepts either a bridge JWT or,
// when a key hash is configured, a shared key in the X-Bridge-Key header.
// The shared key covers plugins that cannot mint JWTs; the hash is a
// bcrypt hash so the configured value never holds the key itself.
func BridgeAuth(validator TokenValidator, keyHash string) Middleware {
	jwtOnly := BridgeOnly(validator)
	return func(next http.Handler) http.Handler {
		withJWT := jwtOnly(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Bridge-Key")
			if key == "" || keyHash == "" {
				withJWT.ServeHTTP(w, r)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				model.NewUnauthorizedError("invalid bridge key").WriteJSON(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requireRole(validator TokenValidator, allowed func(*jwt.Claims) bool, detail string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, problem := validateRequest(validator, r)
			if problem != nil {
				problem.WriteJSON(w)
				return
			}
			if !allowed(claims) {
				model.NewForbiddenError(detail).WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), PlayerIDKey, claims.PlayerID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validateRequest(validator TokenValidator, r *http.Request) (*jwt.Claims, *model.ProblemDetails) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, model.NewUnauthorizedError("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, model.NewUnauthorizedError("invalid authorization header format")
	}

	claims, err := validator.Validate(parts[1])
	if err != nil {
		switch err {
		case jwt.ErrTokenExpired:
			return nil, model.NewUnauthorizedError("token expired")
		case jwt.ErrInvalidSignature:
			return nil, model.NewUnauthorizedError("invalid token signature")
		default:
			return nil, model.NewUnauthorizedError("invalid token")
		}
	}
	return claims, nil
}

// GetPlayerID extracts the acting player's id from context
func GetPlayerID(ctx context.Context) string {
	if id, ok := ctx.Value(PlayerIDKey).(string); ok {
		return id
	}
	return ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
