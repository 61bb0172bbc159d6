package main

import (
	"net/http"
	"os"
	"time"

	"pixel-pet/internal/adapters/auth/botjwt"
	"pixel-pet/internal/adapters/auth/gateway"
	"pixel-pet/internal/config"
	"pixel-pet/internal/platform/logger"
	"pixel-pet/internal/ports/auth"
	"pixel-pet/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	var verifier auth.AuthVerifier
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		verifier = botjwt.NewVerifier(cfg.JWTSecret)
	case config.AuthModeGateway:
		client, err := gateway.NewClient(gateway.Config{
			BaseURL: cfg.GatewayURL,
			APIKey:  cfg.GatewayAPIKey,
			Timeout: cfg.GatewayTimeout,
		})
		if err != nil {
			log.Error("gateway client init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		verifier = gateway.NewVerifier(client)
	default:
		// modo dev: sin verifier, X-Debug-User-ID
	}

	r := router.NewRouter(router.Options{AuthVerifier: verifier, Logger: log})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr, "auth_mode": string(cfg.AuthMode)})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
