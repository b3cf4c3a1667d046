package app

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/lvm-browser/internal/cache"
	"github.com/yourusername/lvm-browser/internal/datasource"
	"github.com/yourusername/lvm-browser/internal/gateway"
	"github.com/yourusername/lvm-browser/internal/model"
	"github.com/yourusername/lvm-browser/internal/ui"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// App represents the main application
type App struct {
	logger    *zap.Logger
	config    *Config
	version   string
	collector *datasource.Collector
	store     *cache.SnapshotStore
	refresher *cache.Refresher
}

// New creates a new App instance
func New(config *Config, version string) (*App, error) {
	logger, err := initLogger(config.LogLevel, config.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &App{
		logger:  logger,
		config:  config,
		version: version,
	}, nil
}

// Run starts the application
func (a *App) Run() error {
	a.logger.Info("Starting lvm-browser",
		zap.String("version", a.version),
		zap.Duration("refresh_interval", a.config.RefreshInterval),
		zap.Duration("command_timeout", a.config.CommandTimeout),
	)

	a.initPipeline()

	if err := a.refresher.Start(); err != nil {
		return fmt.Errorf("failed to start refresher: %w", err)
	}

	if err := a.startUI(); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	return nil
}

// initPipeline wires the command gateway, collector, snapshot store and
// refresher together.
func (a *App) initPipeline() {
	runner := gateway.NewExecRunner(a.config.CommandTimeout, a.logger)
	a.collector = datasource.NewCollector(runner, a.logger)
	a.store = cache.NewSnapshotStore(a.logger)
	a.refresher = cache.NewRefresher(a.collector, a.store, a.config.RefreshInterval, a.logger)
}

// startUI starts the Bubble Tea UI
func (a *App) startUI() error {
	a.logger.Info("Starting UI", zap.String("locale", a.config.Locale))

	if a.config.NoColor {
		os.Setenv("NO_COLOR", "1")
	}

	uiModel := ui.NewModel(a, a.logger, a.config.Locale, a.version, a.config.ExportDir)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	return nil
}

// Snapshot returns the latest topology snapshot, if any.
func (a *App) Snapshot() (*model.Topology, bool) {
	return a.store.Get()
}

// RefreshNow triggers an immediate topology refresh.
func (a *App) RefreshNow() {
	a.refresher.RefreshNow()
}

// Status returns the refresher status for the header line.
func (a *App) Status() cache.Status {
	return a.refresher.GetStatus()
}

// Shutdown gracefully stops the application
func (a *App) Shutdown() error {
	a.logger.Info("Shutting down...")

	if a.refresher != nil {
		if err := a.refresher.Stop(); err != nil {
			a.logger.Error("Failed to stop refresher", zap.Error(err))
		}
	}

	// Sync only flushes buffered log entries, ignore stderr sync errors
	_ = a.logger.Sync()
	return nil
}

// initLogger initializes the zap logger with file rotation support
func initLogger(levelStr, logFile string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if logFile == "" {
		logFile = "/tmp/lvm-browser.log"
	}

	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	})
	core := zapcore.NewCore(fileEncoder, fileWriter, level)

	// NOTE: Do NOT output to stderr/stdout in TUI mode
	// Bubble Tea requires full control of terminal output
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(logger)

	return logger, nil
}
