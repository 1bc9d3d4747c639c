package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/study-tracker/constants"
	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
	"github.com/joseph-ayodele/study-tracker/internal/export"
	"github.com/joseph-ayodele/study-tracker/internal/extract"
	"github.com/joseph-ayodele/study-tracker/internal/ingest"
	"github.com/joseph-ayodele/study-tracker/internal/llm"
	"github.com/joseph-ayodele/study-tracker/internal/llm/openai"
	"github.com/joseph-ayodele/study-tracker/internal/pipeline/document"
	"github.com/joseph-ayodele/study-tracker/internal/pipeline/reportcard"
	repo "github.com/joseph-ayodele/study-tracker/internal/repository"

	processor "github.com/joseph-ayodele/study-tracker/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		inmem       = flag.Bool("inmem", false, "use in-memory SQLite database")
		dir         = flag.String("dir", "", "directory to process documents from (required)")
		out         = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		student     = flag.String("student", "batch", "student username to attach documents to")
		reportCards = flag.Bool("report-cards", false, "treat documents as report cards instead of scripts")
		watch       = flag.Bool("watch", false, "after the initial pass, keep watching the directory for new documents until interrupted")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "grades.xlsx")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	storeCfg := repo.Config{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.DSN,
		MaxConns:    cfg.Database.MaxConns,
		DialTimeout: cfg.Database.DialTimeout,
	}
	if *inmem {
		storeCfg.Driver = "sqlite"
		storeCfg.DSN = "file:study-batch?mode=memory&cache=shared"
	}
	store, err := repo.Open(ctx, storeCfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Wire repositories
	students := repo.NewStudentRepository(store, logger)
	scripts := repo.NewScriptRepository(store, logger)
	memos := repo.NewMemorandumRepository(store, logger)
	plans := repo.NewStudyPlanRepository(store, logger)
	cards := repo.NewReportCardRepository(store, logger)
	careers := repo.NewCareerRepository(store, logger)

	// Create or fetch the batch student
	st, err := students.GetOrCreateByUsername(ctx, *student)
	if err != nil {
		logger.Error("failed to get or create student", "error", err)
		os.Exit(1)
	}
	logger.Info("using student", "id", st.ID, "username", st.Username)

	// Setup OpenAI client (graceful if missing)
	var completer llm.Completer = llm.Unavailable{}
	if cfg.LLM.APIKey != "" {
		completer = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		logger.Info("OpenAI client initialized", "model", cfg.LLM.Model)
	} else {
		logger.Warn("OpenAI API key not configured, analysis will use heuristics")
	}

	// Setup pipelines
	extractor := extract.NewExtractor(logger)
	docs := document.NewPipeline(logger, extractor, completer, scripts, memos, plans)
	cardPipe := reportcard.NewPipeline(logger, extractor, completer, cards, careers)
	proc := processor.NewProcessor(logger, docs, cardPipe)

	process := func(ctx context.Context, path string) error {
		format := constants.MapExtToFormat(filepath.Ext(path))
		if *reportCards {
			card, err := cards.Create(ctx, &entity.ReportCard{
				StudentID:  st.ID,
				SourcePath: path,
				Format:     format,
			})
			if err != nil {
				return err
			}
			_, err = proc.ProcessReportCard(ctx, st, card)
			return err
		}
		script, err := scripts.Create(ctx, &entity.Script{
			StudentID:  st.ID,
			Title:      filepath.Base(path),
			SourcePath: path,
			Format:     format,
		})
		if err != nil {
			return err
		}
		_, err = proc.ProcessScript(ctx, st, script)
		return err
	}

	logger.Info("starting batch run", "dir", *dir, "report_cards", *reportCards)
	start := time.Now()
	results, stats, err := ingest.WalkDirectory(ctx, *dir, nil, true, process)
	if err != nil {
		logger.Error("failed to walk directory", "error", err)
		os.Exit(1)
	}
	for _, r := range results {
		if r.Err != "" {
			logger.Error("failed to process file", "path", r.Path, "error", r.Err)
		}
	}
	logger.Info("batch run complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"elapsed_ms", time.Since(start).Milliseconds())

	if *watch {
		wctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		events, werrs, err := ingest.StartWatcher(wctx, ingest.WatchConfig{
			Roots:    []string{*dir},
			Debounce: 500 * time.Millisecond,
		})
		if err != nil {
			logger.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		logger.Info("watching for new documents", "dir", *dir)
		for events != nil || werrs != nil {
			select {
			case path, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				if err := process(wctx, path); err != nil {
					logger.Error("failed to process file", "path", path, "error", err)
				}
			case werr, ok := <-werrs:
				if !ok {
					werrs = nil
					continue
				}
				logger.Error("watcher error", "error", werr)
			}
		}
		logger.Info("watcher stopped")
	}

	// Export to XLSX
	logger.Info("exporting to XLSX", "output", *out)
	exporter := export.NewService(cards, careers, logger)
	xlsxBytes, err := exporter.ExportGradesXLSX(ctx, st.ID)
	if err != nil {
		logger.Error("failed to export grades", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files matched: %d\n", stats.Matched)
	fmt.Printf("- Files processed: %d\n", stats.Succeeded)
	fmt.Printf("- Failures: %d\n", stats.Failed)
	fmt.Printf("- Output: %s\n", *out)
}
