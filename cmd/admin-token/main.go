package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/foxsrv/companyeconomy/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Flags for customization
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to JWT public key (for -generate-keys)")
	playerID := flag.String("player", "admin-dev", "Player ID for the token")
	role := flag.String("role", "admin", "Token role: admin or bridge")
	issuer := flag.String("issuer", "companyeconomy.foxsrv.net", "JWT issuer")
	expMins := flag.Int("exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")
	generateKeys := flag.Bool("generate-keys", false, "Generate a new RSA key pair and exit")
	bridgeKey := flag.Bool("bridge-key", false, "Generate a shared bridge key and its bcrypt hash, then exit")

	flag.Parse()

	if *generateKeys {
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating key pair: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
		return
	}

	if *bridgeKey {
		generateBridgeKey()
		return
	}

	if *role != "admin" && *role != "bridge" {
		fmt.Fprintf(os.Stderr, "Error: role must be 'admin' or 'bridge', got %q\n", *role)
		os.Exit(1)
	}

	// Create JWT service with just the private key
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate keys first with: admin-token -generate-keys\n")
		os.Exit(1)
	}

	claims := jwt.Claims{
		PlayerID: *playerID,
		Name:     *playerID,
		Role:     *role,
	}

	// Sign token
	token, err := jwtService.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"player_id":    *playerID,
			"role":         *role,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
		fmt.Println("Token Generated")
		fmt.Println("===============")
		fmt.Printf("Player:   %s\n", *playerID)
		fmt.Printf("Role:     %s\n", *role)
		fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(token)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/companies\n", token[:50]+"...")
	}
}

// generateBridgeKey mints a random shared key for the game server bridge.
// The key goes into the plugin config, the hash into BRIDGE_KEY_HASH.
func generateBridgeKey() {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}
	key := hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Bridge Key Generated")
	fmt.Println("====================")
	fmt.Println("Key (for the game server plugin, sent as X-Bridge-Key):")
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Hash (set as BRIDGE_KEY_HASH on the API server):")
	fmt.Println(string(hash))
}
