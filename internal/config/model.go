package config

import (
	"time"

	"github.com/specialistvlad/k2700go/internal/transport"
)

// Session is the unified representation of one scan session.
type Session struct {
	Name             string
	Connection       transport.Settings
	TemperatureUnits string
	Groups           []ChannelGroup
	Scan             ScanSettings
	Output           Output
	StatusPort       int
}

// ChannelGroup binds a set of card channels to one measurement function.
type ChannelGroup struct {
	Name     string
	IDs      []int
	Function string
	Probe    string
}

// ScanSettings control the scan loop's cadence.
type ScanSettings struct {
	// Interval is the pause between scan passes.
	Interval time.Duration
	// Count is the number of passes; zero means scan until interrupted.
	Count int
	// Rounding is the number of decimals kept on reading timestamps.
	// Zero means whole seconds; loaders apply DefaultRounding when the
	// session file leaves it unset.
	Rounding int
}

// Output says where the readings end up.
type Output struct {
	// CSVPath is the readings file; empty disables recording.
	CSVPath string
	// UploadURL, when set, receives the finished CSV via HTTP PUT
	// (typically an S3 pre-signed URL).
	UploadURL string
}

// DefaultRounding matches the instrument clock's useful precision.
const DefaultRounding = 2
