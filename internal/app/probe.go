package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/k2700go/internal/scpi"
)

// runProbe is the connectivity test: open the configured transport,
// ask the instrument to identify itself, and report what answered.
// It succeeds exactly when the instrument's serial settings (baud rate,
// no flow control, CRLF termination) match the session's.
func (a *App) runProbe(ctx context.Context) error {
	settings := a.session.Connection
	a.logger.Info("🔌 Probing instrument", "transport", settings.Kind, "target", settings.Target())

	stream, err := a.dialer.Dial(ctx, settings)
	if err != nil {
		return fmt.Errorf("probe failed to open %s: %w", settings.Target(), err)
	}

	conn := scpi.NewConn(stream)
	defer conn.Close()

	response, err := conn.Query(ctx, "*IDN?")
	if err != nil {
		return fmt.Errorf("port opened but the instrument did not identify itself "+
			"(check baud rate and that flow control is off): %w", err)
	}

	id, err := scpi.ParseIDN(response)
	if err != nil {
		return fmt.Errorf("unexpected identification response: %w", err)
	}

	a.logger.Info("✅ Instrument responding", "model", id.Model)

	fmt.Fprintf(a.outW, "manufacturer = %q\n", id.Manufacturer)
	fmt.Fprintf(a.outW, "model        = %q\n", id.Model)
	fmt.Fprintf(a.outW, "serial       = %q\n", id.Serial)
	fmt.Fprintf(a.outW, "firmware     = %q\n", id.Firmware)
	return nil
}
