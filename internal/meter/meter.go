package meter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/k2700go/internal/ctxlog"
	"github.com/specialistvlad/k2700go/internal/scpi"
)

// The instrument-facing error taxonomy.
var (
	ErrInvalidUnit = errors.New("invalid temperature unit: must be C, K, or F")
	ErrNoChannels  = errors.New("no channels have been defined to scan")
	ErrNotSetUp    = errors.New("scan setup has not been completed")
)

// Multimeter drives a single Keithley 2700 over an open SCPI connection.
// It is not safe for concurrent use; the scan loop owns it exclusively.
type Multimeter struct {
	conn        *scpi.Conn
	channels    []*Channel
	channelList string
	tempUnits   string
	setup       bool
	firstScan   bool
	last        *ScanResult
	displayHold time.Duration
}

// defaultDisplayHold is how long Disconnect leaves CLOSING on the front
// panel before switching the display back, long enough for an operator
// standing at the bench to notice.
const defaultDisplayHold = 3 * time.Second

// Option tweaks a Multimeter at construction time.
type Option func(*Multimeter)

// WithDisplayHold overrides how long Disconnect holds the CLOSING text.
// Zero disables the hold.
func WithDisplayHold(d time.Duration) Option {
	return func(m *Multimeter) { m.displayHold = d }
}

// New takes ownership of the connection, resets and clears the
// instrument, and switches its display to text mode showing READY.
func New(ctx context.Context, conn *scpi.Conn, opts ...Option) (*Multimeter, error) {
	m := &Multimeter{
		conn:        conn,
		tempUnits:   "C",
		firstScan:   true,
		displayHold: defaultDisplayHold,
	}
	for _, opt := range opts {
		opt(m)
	}

	init := []string{"*RST", "*CLS", "TRAC:CLE", "DISP:TEXT:STAT ON"}
	for _, cmd := range init {
		if err := conn.Write(ctx, cmd); err != nil {
			return nil, fmt.Errorf("failed to initialize instrument: %w", err)
		}
	}
	if err := m.Display(ctx, "READY"); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Instrument reset and cleared.")
	return m, nil
}

// Identify queries and decodes the instrument's *IDN? response.
func (m *Multimeter) Identify(ctx context.Context) (scpi.Identity, error) {
	response, err := m.conn.Query(ctx, "*IDN?")
	if err != nil {
		return scpi.Identity{}, err
	}
	return scpi.ParseIDN(response)
}

// Display shows a short text message on the instrument's front panel.
func (m *Multimeter) Display(ctx context.Context, text string) error {
	return m.conn.Write(ctx, fmt.Sprintf("DISP:TEXT:DATA '%s'", text))
}

// SetTemperatureUnits selects the unit for temperature probes: C, F or K.
func (m *Multimeter) SetTemperatureUnits(ctx context.Context, units string) error {
	units = strings.ToUpper(strings.TrimSpace(units))
	switch units {
	case "C", "F", "K":
	default:
		return fmt.Errorf("%w (got %q)", ErrInvalidUnit, units)
	}
	if err := m.conn.Write(ctx, "UNIT:TEMP "+units); err != nil {
		return err
	}
	m.tempUnits = units
	return nil
}

// DefineChannels adds a group of channels sharing one measurement type.
// The reading unit follows the type's base function; temperature channels
// pick up the currently selected temperature unit.
func (m *Multimeter) DefineChannels(ids []int, mt MeasurementType) {
	var unit string
	switch mt.Function {
	case "TEMP":
		unit = m.tempUnits
	case "VOLT":
		unit = "V"
	case "CURR":
		unit = "A"
	case "RES", "FRES":
		unit = "Ohms"
	}
	for _, id := range ids {
		m.channels = append(m.channels, newChannel(id, mt, unit))
	}
}

// Channels returns the defined channels in scan order.
func (m *Multimeter) Channels() []*Channel {
	return m.channels
}

// SetupScan completes the instrument-side scan configuration. It must be
// called after all channels are defined and before the first Scan.
func (m *Multimeter) SetupScan(ctx context.Context) error {
	if len(m.channels) == 0 {
		return ErrNoChannels
	}

	ids := make([]int, 0, len(m.channels))
	for _, ch := range m.channels {
		ids = append(ids, ch.ID)
	}
	m.channelList = scpi.ChannelList(ids)

	commands := []string{
		"TRAC:CLE",
		"INIT:CONT OFF",
		"TRIG:COUN 1",
	}
	for _, ch := range m.channels {
		commands = append(commands, ch.setupCommands...)
	}
	commands = append(commands,
		fmt.Sprintf("SAMP:COUN %d", len(m.channels)),
		"ROUT:SCAN "+m.channelList,
		"ROUT:SCAN:TSO IMM",
		"ROUT:SCAN:LSEL INT",
	)

	for _, cmd := range commands {
		if err := m.conn.Write(ctx, cmd); err != nil {
			return fmt.Errorf("scan setup failed: %w", err)
		}
	}

	m.setup = true
	ctxlog.FromContext(ctx).Debug("Scan setup complete.", "channels", len(m.channels))
	return nil
}

// Scan triggers one scan pass and returns the per-channel readings.
//
// When timestamp is zero the instrument's own clock drives the result
// times: the first scan reads at time zero and later scans report the
// time elapsed since the previous one. A non-zero timestamp is taken
// verbatim as the reading time. rounding sets the number of decimals
// kept on the reported time.
func (m *Multimeter) Scan(ctx context.Context, timestamp float64, rounding int) (*ScanResult, error) {
	if !m.setup {
		return nil, ErrNotSetUp
	}

	switch {
	// A failed scan leaves no reference point behind, so a retry starts
	// over as a first scan.
	case timestamp == 0 && (m.firstScan || m.last == nil):
		m.firstScan = false
		return m.readScan(ctx, 0, rounding, false)
	case timestamp == 0:
		former := m.last.DeviceTime - m.last.Timestamp
		return m.readScan(ctx, former, rounding, false)
	default:
		m.firstScan = false
		return m.readScan(ctx, timestamp, rounding, true)
	}
}

func (m *Multimeter) readScan(ctx context.Context, timestamp float64, rounding int, userTimestamp bool) (*ScanResult, error) {
	raw, err := m.conn.Query(ctx, "READ?")
	if err != nil {
		return nil, err
	}
	result, err := newScanResult(m.channels, scpi.SplitResponse(raw), timestamp, rounding, userTimestamp)
	if err != nil {
		return nil, err
	}
	m.last = result
	return result, nil
}

// CSVHeader renders the column headings matching ScanResult.CSVRow.
func (m *Multimeter) CSVHeader() (string, error) {
	if !m.setup {
		return "", ErrNotSetUp
	}
	return csvHeader(m.channels), nil
}

// WriteCommand passes a raw SCPI command straight through to the device.
func (m *Multimeter) WriteCommand(ctx context.Context, cmd string) error {
	return m.conn.Write(ctx, cmd)
}

// QueryCommand passes a raw SCPI query straight through to the device.
func (m *Multimeter) QueryCommand(ctx context.Context, cmd string) (string, error) {
	return m.conn.Query(ctx, cmd)
}

// Disconnect shows CLOSING on the front panel, holds it briefly so the
// operator sees it, then restores the display, opens all routes and
// closes the connection.
func (m *Multimeter) Disconnect(ctx context.Context) error {
	if err := m.conn.Write(ctx, "DISP:TEXT:DATA 'CLOSING'"); err != nil {
		m.conn.Close()
		return err
	}
	m.holdDisplay(ctx)

	shutdown := []string{
		"DISP:TEXT:STAT OFF",
		"ROUT:OPEN:ALL",
	}
	for _, cmd := range shutdown {
		if err := m.conn.Write(ctx, cmd); err != nil {
			m.conn.Close()
			return err
		}
	}
	return m.conn.Close()
}

// holdDisplay waits out the display hold, cut short by the context.
func (m *Multimeter) holdDisplay(ctx context.Context) {
	if m.displayHold <= 0 {
		return
	}
	timer := time.NewTimer(m.displayHold)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
