package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/drujensen/todo/internal/api"
	"github.com/drujensen/todo/internal/api/websocket"
	"github.com/drujensen/todo/internal/client"
	"github.com/drujensen/todo/internal/domain/interfaces"
	"github.com/drujensen/todo/internal/domain/services"
	"github.com/drujensen/todo/internal/impl/config"
	"github.com/drujensen/todo/internal/impl/database"
	"github.com/drujensen/todo/internal/impl/metrics"
	"github.com/drujensen/todo/internal/impl/report"
	stores_json "github.com/drujensen/todo/internal/impl/stores/json"
	stores_mongo "github.com/drujensen/todo/internal/impl/stores/mongo"
	"github.com/drujensen/todo/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "unknown" // This should be set during build with -ldflags="-X main.version=1.0.0"
)

func main() {
	// Check version flag first
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version)
		os.Exit(0)
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: todo [serve|tui|export] [--storage=type] [--out=file]\n")
		flag.PrintDefaults()
	}

	storage := flag.String("storage", "mongo", "Storage type: mongo or file")
	out := flag.String("out", "tasks.pdf", "Output file for export")

	// Preserve the flags by not calling flag.Parse() yet
	flag.CommandLine.Parse([]string{})

	// Default mode is "serve"
	modeStr := "serve"

	// Check the first non-flag argument for the mode
	if len(os.Args) > 1 && slices.Contains([]string{"serve", "tui", "export"}, os.Args[1]) {
		modeStr = os.Args[1]
		os.Args = slices.Delete(os.Args, 0, 1)
	}

	// Parse the remaining arguments which are flags
	flag.Parse()

	if *storage != "file" && *storage != "mongo" {
		fmt.Fprintf(os.Stderr, "Invalid storage type: %s\n", *storage)
		flag.Usage()
		os.Exit(1)
	}

	bootConfig := zap.NewDevelopmentConfig()
	bootConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	bootLogger, err := bootConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.InitConfig(bootLogger)
	if err != nil {
		bootLogger.Fatal("Failed to load config", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		bootLogger.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	switch modeStr {
	case "tui":
		p := tea.NewProgram(tui.NewTUI(client.New(cfg.APIURL)), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatal(err)
		}
	case "export":
		if err := runExport(cfg, *storage, *out, logger); err != nil {
			logger.Fatal("Export failed", zap.Error(err))
		}
	default:
		if err := runServer(cfg, *storage, logger); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}
}

// newLogger builds the process logger: console output in development style or
// JSON in production style, at the given level.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	var logConfig zap.Config
	switch format {
	case "json":
		logConfig = zap.NewProductionConfig()
	case "console", "":
		logConfig = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", format)
	}
	logConfig.Level = zap.NewAtomicLevelAt(lvl)

	return logConfig.Build()
}

// openStore returns the configured task store and a func releasing it.
func openStore(ctx context.Context, storage string, cfg *config.Config, logger *zap.Logger) (interfaces.TaskStore, func(), error) {
	if storage == "file" {
		store, err := stores_json.NewJSONTaskStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using file storage", zap.String("data_dir", cfg.DataDir))
		return store, func() {}, nil
	}

	db, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase, cfg.StorageTimeout, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := db.Disconnect(ctx); err != nil {
			logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}

	if err := db.EnsureCollection(ctx, cfg.MongoCollection); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to prepare collection %q: %w", cfg.MongoCollection, err)
	}

	return stores_mongo.NewMongoTaskStore(db.Collection(cfg.MongoCollection)), cleanup, nil
}

func runServer(cfg *config.Config, storage string, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, storage, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New()
	taskService := services.NewTaskService(store, logger,
		services.WithStorageTimeout(cfg.StorageTimeout),
		services.WithOperationRecorder(m),
	)

	hub := websocket.NewTaskHub(logger, cfg.CORSOrigins)
	unsubscribe := hub.Start()
	defer unsubscribe()
	defer hub.Close()

	server := api.NewServer(taskService, api.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Metrics:        m,
		Hub:            hub,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown failed", zap.Error(err))
	}

	logSummary(shutdownCtx, taskService, logger)
	return nil
}

// logSummary records how many tasks exist at shutdown.
func logSummary(ctx context.Context, taskService services.TaskService, logger *zap.Logger) {
	tasks, err := taskService.ListTasks(ctx)
	if err != nil {
		logger.Warn("Failed to summarize tasks", zap.Error(err))
		return
	}

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	logger.Info("Task summary", zap.Int("total", len(tasks)), zap.Int("completed", completed))
}

func runExport(cfg *config.Config, storage, out string, logger *zap.Logger) error {
	ctx := context.Background()

	store, closeStore, err := openStore(ctx, storage, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	taskService := services.NewTaskService(store, logger, services.WithStorageTimeout(cfg.StorageTimeout))
	tasks, err := taskService.ListTasks(ctx)
	if err != nil {
		return err
	}

	data, err := report.BuildTasksReport(tasks, time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	logger.Info("Exported tasks", zap.Int("count", len(tasks)), zap.String("file", out))
	return nil
}
