package transport

import (
	"context"
	"fmt"
	"io"
	"net"
)

// dialTCP connects to an instrument exposed through a serial-to-ethernet
// bridge speaking raw SCPI on a socket.
func dialTCP(ctx context.Context, settings Settings) (io.ReadWriteCloser, error) {
	dialer := net.Dialer{Timeout: settings.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", settings.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", settings.Address, err)
	}
	return conn, nil
}
