package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/caregrid/internal/ctxlog"
	"github.com/specialistvlad/caregrid/internal/inmemorytopology"
	"github.com/specialistvlad/caregrid/internal/topology"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. Results go to outW,
// logs to logW, so a descriptor on stdout is never mixed with log lines.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// assemble runs one synthesis pass into a fresh store.
func (a *App) assemble(ctx context.Context) (*inmemorytopology.Store, *topology.Deployment, error) {
	store := inmemorytopology.New()
	d, err := topology.Assemble(ctx, store, a.config.ProvisionOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("synthesis failed: %w", err)
	}
	return store, d, nil
}

// write sends output to OutPath when set, otherwise to the app's writer.
func (a *App) write(ctx context.Context, data []byte) error {
	if a.config.OutPath == "" {
		_, err := a.outW.Write(data)
		return err
	}
	if err := os.WriteFile(a.config.OutPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.config.OutPath, err)
	}
	ctxlog.FromContext(ctx).Info("Output written.", "path", a.config.OutPath, "bytes", len(data))
	return nil
}
