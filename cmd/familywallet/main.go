package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"familywallet/internal/advisor"
	"familywallet/internal/config"
	"familywallet/internal/core"
	apphttp "familywallet/internal/http"
	"familywallet/internal/log"
	"familywallet/internal/store"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	st := store.New()
	if cfg.SeedDemo {
		if err := st.SeedDemo(); err != nil {
			logger.Error("failed to seed demo data", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("seeded demo household",
			log.FieldOperation, log.OpStartup,
			"members", len(st.Members()),
			"transactions", len(st.Transactions()))
	}

	adv, err := advisor.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Error("failed to initialize assistant", log.FieldError, err, log.FieldModel, cfg.GeminiModel)
		os.Exit(1)
	}

	srv := apphttp.NewServer(apphttp.Config{
		Addr:               ":" + cfg.Port,
		ActorRole:          core.Role(cfg.ActorRole),
		DisplayCurrency:    cfg.DisplayCurrency,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, st, adv, logger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting familywallet server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"actor_role", cfg.ActorRole,
		log.FieldCurrency, cfg.DisplayCurrency,
		"assistant_enabled", adv.Enabled())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}
