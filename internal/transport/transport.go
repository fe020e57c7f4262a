package transport

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Transport kinds accepted in a session's connection block.
const (
	KindSerial = "serial"
	KindTCP    = "tcp"
)

// DefaultBaudRate matches the instrument's factory RS-232 setting.
const DefaultBaudRate = 9600

// DefaultDialTimeout bounds how long a dial may take when the session
// does not specify its own timeout.
const DefaultDialTimeout = 5 * time.Second

// Settings describes how to reach the instrument.
//
// The 2700 is driven at 8 data bits, no parity, one stop bit. Flow
// control must be disabled on the instrument for this tool to work, so
// the only accepted value is "none".
type Settings struct {
	Kind        string
	Port        string // serial device, e.g. /dev/ttyUSB0 or COM3
	Address     string // tcp host:port
	BaudRate    int
	FlowControl string
	DialTimeout time.Duration
}

// Normalize fills in defaults for fields the session left unset.
func (s Settings) Normalize() Settings {
	if s.BaudRate == 0 {
		s.BaudRate = DefaultBaudRate
	}
	if s.FlowControl == "" {
		s.FlowControl = "none"
	}
	if s.DialTimeout == 0 {
		s.DialTimeout = DefaultDialTimeout
	}
	return s
}

// Validate rejects settings that can never produce a working connection.
func (s Settings) Validate() error {
	switch s.Kind {
	case KindSerial:
		if s.Port == "" {
			return fmt.Errorf("serial transport requires a port")
		}
	case KindTCP:
		if s.Address == "" {
			return fmt.Errorf("tcp transport requires an address")
		}
	default:
		return fmt.Errorf("unknown transport %q: must be %q or %q", s.Kind, KindSerial, KindTCP)
	}
	if s.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", s.BaudRate)
	}
	if s.FlowControl != "none" {
		return fmt.Errorf("flow control %q not supported: the instrument must be set to no flow control", s.FlowControl)
	}
	return nil
}

// Target names whatever the settings point at, for logs and errors.
func (s Settings) Target() string {
	if s.Kind == KindTCP {
		return s.Address
	}
	return s.Port
}

// Dialer opens byte streams to instruments and enumerates local serial
// devices. Tests substitute a simulator-backed implementation.
type Dialer interface {
	Dial(ctx context.Context, settings Settings) (io.ReadWriteCloser, error)
	ListPorts() ([]string, error)
}

// SystemDialer dispatches to the real serial and TCP transports.
type SystemDialer struct{}

// Dial validates the settings and opens the matching transport.
func (SystemDialer) Dial(ctx context.Context, settings Settings) (io.ReadWriteCloser, error) {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	switch settings.Kind {
	case KindSerial:
		return dialSerial(ctx, settings)
	case KindTCP:
		return dialTCP(ctx, settings)
	}
	// Unreachable after Validate.
	return nil, fmt.Errorf("unknown transport %q", settings.Kind)
}
