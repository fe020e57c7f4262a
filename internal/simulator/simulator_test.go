package simulator

import (
	"bufio"
	"context"
	"testing"

	"github.com/specialistvlad/k2700go/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exchange sends one line and, when query is true, reads one response line.
func exchange(t *testing.T, rw *bufio.ReadWriter, cmd string, query bool) string {
	t.Helper()
	_, err := rw.WriteString(cmd + "\r\n")
	require.NoError(t, err)
	require.NoError(t, rw.Flush())
	if !query {
		return ""
	}
	line, err := rw.ReadString('\n')
	require.NoError(t, err)
	return line[:len(line)-1]
}

func TestIdentificationAndReadCycle(t *testing.T) {
	sim := New(
		WithChannelValue(101, 21.5),
		WithChannelValue(102, 0.5),
		WithClockStep(1.5),
	)
	conn := sim.Connect()
	defer conn.Close()
	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))

	assert.Equal(t, DefaultIdentity, exchange(t, rw, "*IDN?", true))

	exchange(t, rw, "ROUT:SCAN (@101,102)", false)

	first := exchange(t, rw, "READ?", true)
	assert.Equal(t, []int{101, 102}, sim.ScanChannels())
	assert.Contains(t, first, "+2.15000000E+01")
	assert.Contains(t, first, "+0.00000000E+00SECS")
	assert.Contains(t, first, "+00001RDNG#")
	assert.Contains(t, first, "+00002RDNG#")

	// The clock advances between scans.
	second := exchange(t, rw, "READ?", true)
	assert.Contains(t, second, "+1.50000000E+00SECS")
}

func TestResetClearsScanState(t *testing.T) {
	sim := New()
	conn := sim.Connect()
	defer conn.Close()
	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))

	exchange(t, rw, "ROUT:SCAN (@201)", false)
	exchange(t, rw, "*RST", false)

	// A query flushes the command pipeline before asserting on state.
	exchange(t, rw, "*IDN?", true)
	assert.Empty(t, sim.ScanChannels())
}

func TestDisplayCommands(t *testing.T) {
	sim := New()
	conn := sim.Connect()
	defer conn.Close()
	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))

	exchange(t, rw, "DISP:TEXT:STAT ON", false)
	exchange(t, rw, "DISP:TEXT:DATA 'SCANNING'", false)

	// Commands are handled in order, so a query flushes the pipeline.
	exchange(t, rw, "*IDN?", true)

	text, on := sim.DisplayText()
	assert.True(t, on)
	assert.Equal(t, "SCANNING", text)
}

func TestDialerValidatesSettings(t *testing.T) {
	dialer := NewDialer(New())
	ctx := context.Background()

	_, err := dialer.Dial(ctx, transport.Settings{Kind: "gpib"})
	require.Error(t, err)

	conn, err := dialer.Dial(ctx, transport.Settings{Kind: transport.KindSerial, Port: "/dev/ttyS0"})
	require.NoError(t, err)
	conn.Close()
}

func TestDialerListPorts(t *testing.T) {
	dialer := NewDialer(New())
	dialer.Ports = []string{"/dev/ttyUSB0", "/dev/ttyUSB1"}

	ports, err := dialer.ListPorts()
	require.NoError(t, err)
	assert.Equal(t, []string{"/dev/ttyUSB0", "/dev/ttyUSB1"}, ports)
}
