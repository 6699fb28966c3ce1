package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mdcatalog/internal/normalize"
	httpProtocol "mdcatalog/internal/protocols/http"
	"mdcatalog/pkg/config"
	"mdcatalog/pkg/logger"
)

func main() {
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load(os.Getenv("MDCATALOG_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			log.Fatalf("Invalid PORT %q: %v", port, err)
		}
		cfg.Server.Port = p
		cfg.Server.Host = "0.0.0.0"
	}

	logger.Init(cfg.Logging)
	logger.Info("Starting mdcatalog normalization service...")

	lookup, err := normalize.NewLookup(cfg.Lookup.Languages, cfg.Lookup.Demographics, cfg.Lookup.LinkLabels)
	if err != nil {
		logger.Fatalf("Invalid lookup tables: %v", err)
	}
	logger.Infof("Loaded %d languages", lookup.LanguageCount())

	httpServer := httpProtocol.NewServer(cfg, normalize.New(lookup))

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting HTTP server on %s", cfg.Addr()))
		errCh <- httpServer.Start(cfg.Addr())
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info(fmt.Sprintf("Received signal: %v", sig))
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("HTTP server error: %v", err)
		}
		return
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP shutdown error: %v", err)
	}

	logger.Info("Shutdown complete")
}
