package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/export"
	"github.com/joseph-ayodele/study-tracker/internal/extract"
	"github.com/joseph-ayodele/study-tracker/internal/llm"
	"github.com/joseph-ayodele/study-tracker/internal/llm/anthropic"
	"github.com/joseph-ayodele/study-tracker/internal/llm/openai"
	"github.com/joseph-ayodele/study-tracker/internal/pipeline/document"
	"github.com/joseph-ayodele/study-tracker/internal/pipeline/reportcard"
	repo "github.com/joseph-ayodele/study-tracker/internal/repository"
	"github.com/joseph-ayodele/study-tracker/internal/server"

	processor "github.com/joseph-ayodele/study-tracker/internal/pipeline"
)

func main() {
	// Logger
	zlog, _ := zap.NewProduction()
	defer func() { _ = zlog.Sync() }()
	log := zlog.Sugar()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(slogger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Store
	store, err := repo.Open(ctx, repo.Config{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.DSN,
		MaxConns:    cfg.Database.MaxConns,
		DialTimeout: cfg.Database.DialTimeout,
	}, slogger)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	if err := store.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	log.Infow("DB health OK", "driver", cfg.Database.Driver)

	// Repositories
	students := repo.NewStudentRepository(store, slogger)
	scripts := repo.NewScriptRepository(store, slogger)
	memos := repo.NewMemorandumRepository(store, slogger)
	plans := repo.NewStudyPlanRepository(store, slogger)
	cards := repo.NewReportCardRepository(store, slogger)
	careers := repo.NewCareerRepository(store, slogger)

	completer := buildCompleter(cfg, slogger)
	if !completer.Available() {
		log.Warn("no intelligence provider configured, analysis will use heuristics")
	}

	extractor := extract.NewExtractor(slogger)
	docs := document.NewPipeline(slogger, extractor, completer, scripts, memos, plans)
	cardPipe := reportcard.NewPipeline(slogger, extractor, completer, cards, careers)
	proc := processor.NewProcessor(slogger, docs, cardPipe)
	exporter := export.NewService(cards, careers, slogger)

	srv := server.NewServer(cfg, zlog, proc, completer, exporter, students, scripts, memos, plans, cards, careers)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
	fmt.Println("stopped.")
}

// buildCompleter selects the provider from configuration. An unknown provider
// or a missing credential yields the no-op completer so the daemon still runs.
func buildCompleter(cfg *common.Config, logger *slog.Logger) llm.Completer {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" && os.Getenv("OPENAI_API_KEY") == "" {
			return llm.Unavailable{}
		}
		return openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	case "anthropic":
		if cfg.LLM.AnthropicAPIKey == "" && os.Getenv("ANTHROPIC_API_KEY") == "" {
			return llm.Unavailable{}
		}
		return anthropic.NewClient(anthropic.Config{
			APIKey:  cfg.LLM.AnthropicAPIKey,
			Model:   cfg.LLM.AnthropicModel,
			Timeout: cfg.LLM.Timeout,
		}, logger)
	}
	return llm.Unavailable{}
}
