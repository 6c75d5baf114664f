// Package config manages application configuration for the company
// economy API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single
// source of truth.
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - PayrollConfig: salary cycle interval
//   - ExecutorConfig: console command bridge settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	DB_HOST / DB_PORT    - SurrealDB endpoint
//	DB_NAMESPACE / DB_DATABASE - SurrealDB namespace and database
//	DB_USER / DB_PASSWORD - Database credentials
//	JWT_PRIVATE_KEY_PATH / JWT_PUBLIC_KEY_PATH - RSA key pair
//	PAYROLL_INTERVAL     - salary cycle period (default: 30m)
//	EXECUTOR_BRIDGE_URL  - game server console bridge (empty = log only)
//
// Sensible defaults are provided for development; Validate reports every
// problem at once via errors.Join.
package config
