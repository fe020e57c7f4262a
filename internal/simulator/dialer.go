package simulator

import (
	"context"
	"io"

	"github.com/specialistvlad/k2700go/internal/transport"
)

// Dialer satisfies transport.Dialer, handing out connections to one
// simulated instrument regardless of the requested target.
type Dialer struct {
	Instrument *Instrument

	// Ports is what ListPorts reports; tests that exercise port
	// enumeration set it explicitly.
	Ports []string
}

// NewDialer wraps an instrument in a Dialer.
func NewDialer(instrument *Instrument) *Dialer {
	return &Dialer{Instrument: instrument}
}

// Dial validates the settings like the real dialer, then connects to the
// simulated instrument.
func (d *Dialer) Dial(ctx context.Context, settings transport.Settings) (io.ReadWriteCloser, error) {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Instrument.Connect(), nil
}

// ListPorts reports the configured fake port list.
func (d *Dialer) ListPorts() ([]string, error) {
	return append([]string(nil), d.Ports...), nil
}
