package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/storyloom/engine/internal/config"
	"github.com/storyloom/engine/internal/handlers"
	"github.com/storyloom/engine/internal/logger"
	"github.com/storyloom/engine/internal/middleware"
	"github.com/storyloom/engine/internal/services"
	"github.com/storyloom/engine/internal/storage"
	"github.com/storyloom/engine/pkg/blueprint"
	"github.com/storyloom/engine/pkg/generation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Storyloom Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName,
		"trope", cfg.Trope)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, log)
		log.Info("Using Anthropic LLM provider")
	case "venice":
		if cfg.VeniceAPIKey == "" {
			log.Error("Venice API key is required when using venice provider")
			os.Exit(1)
		}
		llmService = services.NewVeniceService(cfg.VeniceAPIKey)
		log.Info("Using Venice LLM provider")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"anthropic", "venice"})
		os.Exit(1)
	}

	// The full combination space is resolved once at startup; requests
	// only ever read from the registry.
	registry := blueprint.NewRegistry(cfg.Trope)
	if err := registry.Build(); err != nil {
		log.Error("Failed to build blueprint registry", "error", err)
		os.Exit(1)
	}
	log.Info("Blueprint registry built", "blueprints", len(registry.Keys()))

	store := storage.NewRedisStorage(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	initCtx, initCancel := context.WithTimeout(context.Background(), time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	runner := generation.NewRunner(registry, llmService, generation.LenientParser{}, cfg.ModelName, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	blueprintHandler := handlers.NewBlueprintHandler(registry, cfg.Trope, log)
	mux.Handle("/v1/blueprints", blueprintHandler)
	mux.Handle("/v1/blueprints/", blueprintHandler)

	generateHandler := handlers.NewGenerateHandler(runner, store, cfg.Trope, log)
	mux.Handle("/v1/generate", generateHandler)

	generationHandler := handlers.NewGenerationHandler(store, log)
	mux.Handle("/v1/generations", generationHandler)
	mux.Handle("/v1/generations/", generationHandler)

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute, // generation holds the connection for the LLM call
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
