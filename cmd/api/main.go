package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cybergod-duck/rallyspeech/internal/api"
	"github.com/cybergod-duck/rallyspeech/internal/config"
	"github.com/cybergod-duck/rallyspeech/internal/llm"
	"github.com/cybergod-duck/rallyspeech/internal/speech"
	"github.com/cybergod-duck/rallyspeech/internal/tts"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.SlogLevel())

	// Requests are refused until the secrets are present; /readyz reports it.
	if err := cfg.Validate(); err != nil {
		slog.Warn("configuration incomplete", "error", err)
	}

	gw := llm.NewGateway(cfg.LLM)
	voice := tts.New(cfg.TTS, cfg.LLM.OpenAIKey, cfg.LLM.OpenAIURL)
	svc := speech.NewService(gw, voice, speech.OptionsFromConfig(cfg))

	router := api.NewRouter(cfg, svc)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // one text call plus two synthesis calls
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server",
			"addr", cfg.Addr(),
			"llm_provider", cfg.LLM.Provider,
			"tts_backend", voice.Name(),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
