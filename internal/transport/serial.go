package transport

import (
	"context"
	"fmt"
	"io"

	"go.bug.st/serial"
)

// dialSerial opens the RS-232 device with the 2700's fixed line framing:
// 8 data bits, no parity, one stop bit. Only the baud rate varies.
func dialSerial(ctx context.Context, settings Settings) (io.ReadWriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: settings.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(settings.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", settings.Port, err)
	}

	// Without a read timeout a misconfigured instrument would hang reads
	// forever; queries already race the context, so this is a backstop.
	if err := port.SetReadTimeout(settings.DialTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", settings.Port, err)
	}

	return port, nil
}

// ListPorts enumerates the serial devices visible to the OS.
func (SystemDialer) ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}
	return ports, nil
}
