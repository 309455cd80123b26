package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

// env is the shared runtime every command builds from flags and config.
type env struct {
	cfg      config.Config
	logger   *log.Logger
	logFile  io.Closer
	shutdown func(context.Context) error
}

// setup loads .env and config, opens the log file and starts telemetry.
// Log and telemetry failures are reported as warnings; config errors are fatal.
func setup(ctx context.Context) (*env, error) {
	// .env is optional; OTEL_* variables may also be set directly
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, logger: log.New(io.Discard)}

	logPath := cfg.Log.File
	if flagLogFile != "" {
		logPath = flagLogFile
	}
	if logger, closer, logErr := openLogger(logPath, cfg.Log.Level); logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", logErr)
	} else {
		e.logger, e.logFile = logger, closer
	}

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		e.logger.Warn("telemetry setup failed, continuing without tracing", "error", err)
	} else {
		e.shutdown = shutdown
	}

	return e, nil
}

// openLogger builds the file logger. The TUI owns the terminal, so logs never go to stderr.
func openLogger(path, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), nil, nil
	}

	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})

	lvl := log.InfoLevel
	if level != "" {
		if parsed, parseErr := log.ParseLevel(level); parseErr == nil {
			lvl = parsed
		}
	}
	if flagDebug {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)

	return logger, f, nil
}

// openStore opens the score database unless storage is disabled.
// A nil store with nil error means history is off.
func (e *env) openStore() (*storage.Store, error) {
	if e.cfg.Storage.Disabled && flagDBPath == "" {
		return nil, nil
	}
	path := e.cfg.Storage.Path
	if flagDBPath != "" {
		path = flagDBPath
	}
	return storage.Open(path)
}

// Close flushes telemetry and closes the log file.
func (e *env) Close(ctx context.Context) {
	if e.shutdown != nil {
		if err := e.shutdown(ctx); err != nil {
			e.logger.Warn("telemetry shutdown failed", "error", err)
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}
