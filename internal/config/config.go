package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AuthMode elige el verifier de tokens.
// @Enum dev, jwt, gateway
type AuthMode string

const (
	AuthModeDev     AuthMode = "dev"     // sin verifier; X-Debug-User-ID
	AuthModeJWT     AuthMode = "jwt"     // verificación local HS256
	AuthModeGateway AuthMode = "gateway" // verificación remota contra el gateway
)

type Config struct {
	Addr string

	DBDSN string

	AuthMode       AuthMode
	JWTSecret      string
	GatewayURL     string
	GatewayAPIKey  string
	GatewayTimeout time.Duration
}

// Load lee .env si existe y arma la config desde el entorno, con defaults
// de desarrollo.
func Load() (Config, error) {
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	mode := AuthMode(strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_MODE"))))
	switch mode {
	case AuthModeJWT, AuthModeGateway:
	default:
		mode = AuthModeDev
	}

	timeout := 5 * time.Second
	if v := os.Getenv("GATEWAY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	return Config{
		Addr: addr,

		DBDSN: os.Getenv("DB_DSN"),

		AuthMode:       mode,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		GatewayURL:     os.Getenv("GATEWAY_URL"),
		GatewayAPIKey:  os.Getenv("GATEWAY_API_KEY"),
		GatewayTimeout: timeout,
	}, nil
}
