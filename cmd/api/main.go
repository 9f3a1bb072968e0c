package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"clinic-appointments/internal/adapters/auth/odin"
	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/auth"
	"clinic-appointments/internal/router"
)

func main() {
	// .env opcional para dev local
	_ = godotenv.Load()

	appLog := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var verifier auth.AuthVerifier
	odinClient, err := odin.NewClient(odin.ConfigFromEnv())
	if err != nil {
		log.Fatalf("odin config: %v", err)
	}
	if odinClient.IsConfigured() {
		verifier = odin.NewVerifier(odinClient)
		appLog.Info("odin verifier enabled", nil)
	} else {
		appLog.Warn("odin not configured, running in dev mode (X-Debug-* headers)", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       appLog,
	})

	srv := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 5 * time.Second,
		// Sin WriteTimeout: /appointments/watch mantiene streams SSE abiertos.
		IdleTimeout: 60 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
