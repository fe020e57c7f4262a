package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/k2700go/internal/config"
	"github.com/specialistvlad/k2700go/internal/ctxlog"
	"github.com/specialistvlad/k2700go/internal/meter"
	"github.com/specialistvlad/k2700go/internal/readings"
	"github.com/specialistvlad/k2700go/internal/transport"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	session *config.Session
	dialer  transport.Dialer
	store   *readings.Store

	// meterOptions tune the instrument driver; tests shorten the
	// disconnect display hold through them.
	meterOptions []meter.Option
}

// NewApp is the constructor for the main application. It returns a
// fully initialized App instance with its own isolated logger. The
// session is loaded eagerly; a failure to load it is a fatal startup
// error and panics, which the entrypoint recovers into a clean message.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, dialer transport.Dialer) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var session *config.Session
	if appConfig.SessionPath != "" {
		var err error
		session, err = loader.Load(ctx, appConfig.SessionPath)
		if err != nil {
			panic(fmt.Errorf("failed to load session: %w", err))
		}
		logger.Debug("Session loaded and validated.", "session", session.Name)
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		session: session,
		dialer:  dialer,
		store:   readings.New(),
	}
}

// Session returns the loaded session. This is primarily for testing.
func (a *App) Session() *config.Session {
	return a.session
}

// Run executes the selected mode: port listing, connectivity probe, or
// a full scan session.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var err error
	switch {
	case a.config.ListPorts:
		err = a.runListPorts(ctx)
	case a.config.Probe:
		err = a.runProbe(ctx)
	default:
		err = a.runSession(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// runListPorts prints the serial devices visible to the OS.
func (a *App) runListPorts(ctx context.Context) error {
	ports, err := a.dialer.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Fprintln(a.outW, "no serial ports found")
		return nil
	}
	for _, port := range ports {
		fmt.Fprintln(a.outW, port)
	}
	return nil
}
