package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-tasks/internal/adapters/auth/tokens"
	"pet-care-tasks/internal/platform/logger"
	"pet-care-tasks/internal/ports/auth"
	"pet-care-tasks/internal/router"
)

// Server de desarrollo con el contrato remoto que consume el cliente.
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Sin API_TOKENS queda en modo dev: el usuario viene en X-Debug-User-ID.
	var verifier auth.AuthVerifier
	if spec := os.Getenv("API_TOKENS"); spec != "" {
		v, err := tokens.Parse(spec)
		if err != nil {
			log.Error("invalid API_TOKENS", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = v
		log.Info("bearer auth enabled", map[string]any{"tokens": v.Len()})
	}

	r := router.NewRouter(router.Options{AuthVerifier: verifier, Logger: log})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
