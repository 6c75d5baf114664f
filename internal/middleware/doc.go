// Package middleware provides HTTP middleware for the company economy
// API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, idempotent retries, and request
// processing.
//
// # Available Middleware
//
//   - Auth: JWT token validation and acting-player extraction
//   - AdminOnly / BridgeOnly: role-gated variants for operational and
//     game-server endpoints
//   - RateLimit: token bucket per player (or IP before auth)
//   - Idempotency: response replay for retried money commands
//   - RequestID, Logger, Recovery, CORS: standard request plumbing
//
// # Authentication
//
// After Auth, handlers read the acting player from context:
//
//	actor := middleware.GetPlayerID(r.Context())
//
// # Context Values
//
//   - GetPlayerID(ctx): authenticated player id
//   - GetClaims(ctx): full JWT claims
//   - GetRequestID(ctx): unique request identifier
package middleware
