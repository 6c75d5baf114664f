// Package jwt provides JSON Web Token utilities for the company
// economy API.
//
// The jwt package handles token generation, validation, and claims
// extraction for player and admin authentication. Tokens are RS256
// signed with an RSA key pair.
//
// # Token Generation
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/jwt-private.pem",
//	    PublicKeyPath:  "keys/jwt-public.pem",
//	    Issuer:         "companyeconomy-api",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    Subject:  "player:steve",
//	    PlayerID: "steve",
//	    Role:     "player",
//	})
//
// # Token Validation
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	playerID := claims.PlayerID
//
// # Roles
//
// Three roles exist: "player" for interactive users, "bridge" for the
// game server reporting presence, and "admin" for operational endpoints
// (reload, create, delete). Admin tokens also pass bridge checks.
package jwt
