package config

import (
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "companyeconomy",
			Database:  "main",
		},
		JWT: JWTConfig{
			PrivateKeyPath: "./keys/private.pem",
			PublicKeyPath:  "./keys/public.pem",
			ExpirationMins: 60,
			Issuer:         "companyeconomy.foxsrv.net",
		},
		Payroll: PayrollConfig{
			Interval: 30 * time.Minute,
		},
		Executor: ExecutorConfig{
			QueueSize: 256,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_MissingDatabaseHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing DB_HOST")
	}
	if !strings.Contains(err.Error(), "DB_HOST") {
		t.Errorf("expected error to mention DB_HOST, got: %v", err)
	}
}

func TestConfig_Validate_InvalidJWTExpiration(t *testing.T) {
	cfg := validBaseConfig()
	cfg.JWT.ExpirationMins = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for zero JWT_EXPIRATION_MINS")
	}
	if !strings.Contains(err.Error(), "JWT_EXPIRATION_MINS") {
		t.Errorf("expected error to mention JWT_EXPIRATION_MINS, got: %v", err)
	}
}

func TestConfig_Validate_ProductionRequiresJWTKeys(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "production"
	cfg.JWT.PrivateKeyPath = ""
	cfg.JWT.PublicKeyPath = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing JWT keys in production")
	}
	if !strings.Contains(err.Error(), "JWT_PRIVATE_KEY_PATH") {
		t.Errorf("expected error to mention JWT_PRIVATE_KEY_PATH, got: %v", err)
	}
}

func TestConfig_Validate_PayrollIntervalTooShort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Payroll.Interval = 10 * time.Second

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for sub-minute PAYROLL_INTERVAL")
	}
	if !strings.Contains(err.Error(), "PAYROLL_INTERVAL") {
		t.Errorf("expected error to mention PAYROLL_INTERVAL, got: %v", err)
	}
}

func TestConfig_Validate_BridgeURLMustBeHTTP(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Executor.BridgeURL = "rcon://gamesrv:25575"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for non-http EXECUTOR_BRIDGE_URL")
	}
	if !strings.Contains(err.Error(), "EXECUTOR_BRIDGE_URL") {
		t.Errorf("expected error to mention EXECUTOR_BRIDGE_URL, got: %v", err)
	}
}

func TestConfig_Validate_EmptyBridgeURLAllowed(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Executor.BridgeURL = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected empty bridge URL (log-only executor) to be valid, got: %v", err)
	}
}

func TestConfig_Validate_BridgeKeyHashMustBeBcrypt(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Executor.KeyHash = "plaintext-key"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for non-bcrypt BRIDGE_KEY_HASH")
	}
	if !strings.Contains(err.Error(), "BRIDGE_KEY_HASH") {
		t.Errorf("expected error to mention BRIDGE_KEY_HASH, got: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port == "" {
		t.Error("expected a default server port")
	}
	if cfg.Payroll.Interval != 30*time.Minute {
		t.Errorf("expected default payroll interval 30m, got %v", cfg.Payroll.Interval)
	}
	if cfg.Executor.QueueSize != 256 {
		t.Errorf("expected default queue size 256, got %d", cfg.Executor.QueueSize)
	}
}
