package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/k2700go/internal/meter"
	"github.com/specialistvlad/k2700go/internal/recorder"
	"github.com/specialistvlad/k2700go/internal/scpi"
)

// runSession executes the full scan session: connect, configure the
// channels, then scan on the configured cadence until the count is
// reached or the context is cancelled.
func (a *App) runSession(ctx context.Context) error {
	session := a.session
	a.logger.Info("🔌 Connecting to instrument",
		"session", session.Name, "transport", session.Connection.Kind, "target", session.Connection.Target())

	stream, err := a.dialer.Dial(ctx, session.Connection)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", session.Connection.Target(), err)
	}

	conn := scpi.NewConn(stream)
	m, err := meter.New(ctx, conn, a.meterOptions...)
	if err != nil {
		conn.Close()
		return err
	}

	id, err := m.Identify(ctx)
	if err != nil {
		conn.Close()
		return fmt.Errorf("instrument did not identify itself: %w", err)
	}
	a.logger.Info("✅ Connected", "model", id.Model, "serial", id.Serial)

	if err := a.configureMeter(ctx, m); err != nil {
		conn.Close()
		return err
	}

	statusPort := session.StatusPort
	if a.config.StatusPort >= 0 {
		statusPort = a.config.StatusPort
	}
	if statusPort > 0 {
		server, err := a.startStatusServer(statusPort)
		if err != nil {
			conn.Close()
			return err
		}
		defer server.Close()
	}

	scanErr := a.scanLoop(ctx, m)

	// Disconnect restores the front panel even after a failed loop. A
	// connection that already died mid-scan has nothing left to restore.
	if err := m.Disconnect(context.WithoutCancel(ctx)); err != nil &&
		!errors.Is(err, scpi.ErrConnClosed) && scanErr == nil {
		scanErr = err
	}
	return scanErr
}

// configureMeter applies the session's units and channel groups and
// completes the scan setup.
func (a *App) configureMeter(ctx context.Context, m *meter.Multimeter) error {
	session := a.session

	if session.TemperatureUnits != "" {
		if err := m.SetTemperatureUnits(ctx, session.TemperatureUnits); err != nil {
			return err
		}
	}

	for _, group := range session.Groups {
		factory, ok := meter.LookupFunction(group.Function)
		if !ok {
			// Validation already rejected unknown functions.
			return fmt.Errorf("unknown measurement function %q", group.Function)
		}
		mt, err := factory(meter.FactoryOpts{Probe: group.Probe})
		if err != nil {
			return fmt.Errorf("channel group %q: %w", group.Name, err)
		}
		m.DefineChannels(group.IDs, mt)
		a.logger.Debug("Channel group defined.", "group", group.Name, "channels", len(group.IDs), "function", group.Function)
	}

	if err := m.SetupScan(ctx); err != nil {
		return err
	}
	a.logger.Info("📡 Scan configured", "channels", len(m.Channels()))
	return nil
}

// scanLoop runs the scan passes and fans results out to the recorder
// and the readings store.
func (a *App) scanLoop(ctx context.Context, m *meter.Multimeter) error {
	session := a.session

	var rec *recorder.Recorder
	if session.Output.CSVPath != "" {
		var err error
		rec, err = recorder.New(session.Output.CSVPath)
		if err != nil {
			return err
		}
		a.logger.Info("📝 Recording readings", "path", rec.Path())
	}

	scans := 0
	scanOnce := func() error {
		result, err := m.Scan(ctx, 0, session.Scan.Rounding)
		if err != nil {
			return err
		}
		scans++
		a.store.Record(result)
		if rec != nil {
			if err := rec.Write(result); err != nil {
				return err
			}
		}
		a.logger.Debug("Scan pass complete.", "scan", scans)
		return nil
	}

	loopErr := a.runScanTicker(ctx, scanOnce)

	if rec != nil {
		if err := rec.Close(); err != nil && loopErr == nil {
			loopErr = err
		}
		a.logger.Info("🏁 Recording finished", "rows", rec.Rows(), "path", rec.Path())

		if loopErr == nil && session.Output.UploadURL != "" {
			loopErr = recorder.Upload(context.WithoutCancel(ctx), rec.Path(), session.Output.UploadURL)
		}
	}
	return loopErr
}

// runScanTicker drives scanOnce on the session cadence. The first scan
// happens immediately; a zero count means scan until the context ends,
// in which case cancellation is a normal stop, not an error.
func (a *App) runScanTicker(ctx context.Context, scanOnce func() error) error {
	session := a.session

	// In continuous mode an interrupt is the normal way to finish, even
	// when it lands mid-read.
	cleanStop := func(err error) bool {
		return session.Scan.Count == 0 && errors.Is(err, context.Canceled)
	}

	if err := scanOnce(); err != nil {
		if cleanStop(err) {
			return nil
		}
		return err
	}
	done := func(scans int) bool {
		return session.Scan.Count > 0 && scans >= session.Scan.Count
	}
	if done(1) {
		return nil
	}

	interval := session.Scan.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for scans := 1; ; {
		select {
		case <-ctx.Done():
			if cleanStop(ctx.Err()) {
				a.logger.Info("🛑 Scan loop stopped", "scans", scans)
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := scanOnce(); err != nil {
				if cleanStop(err) {
					a.logger.Info("🛑 Scan loop stopped", "scans", scans)
					return nil
				}
				return err
			}
			scans++
			if done(scans) {
				a.logger.Info("🏁 Scan count reached", "scans", scans)
				return nil
			}
		}
	}
}
