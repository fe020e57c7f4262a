package meter

import (
	"fmt"
	"math"
	"strings"

	"github.com/specialistvlad/k2700go/internal/scpi"
)

// Measurement is one reading taken from one channel during a scan.
type Measurement struct {
	ChannelID int     `json:"channel"`
	Time      float64 `json:"time"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
}

// ScanResult holds the readings of one scan pass, keyed by channel ID.
type ScanResult struct {
	Raw      []string            `json:"-"`
	Channels []*Channel          `json:"-"`
	Readings map[int]Measurement `json:"readings"`

	// Timestamp is the reported reading time; DeviceTime is the raw
	// instrument clock value the relative timestamps derive from.
	Timestamp  float64 `json:"timestamp"`
	DeviceTime float64 `json:"-"`
}

// entriesPerChannel is the READ? response layout: each scanned channel
// contributes a value, a timestamp and a reading counter.
const entriesPerChannel = 3

// newScanResult decodes a READ? response. When userTimestamp is false the
// instrument's own clock entry drives the reported time: the caller's
// timestamp is treated as the reference point and the result carries the
// elapsed time since it. A zero device clock is forced to 1µs so the
// first reading never reports a zero reference.
func newScanResult(channels []*Channel, raw []string, timestamp float64, rounding int, userTimestamp bool) (*ScanResult, error) {
	if len(raw) < entriesPerChannel*len(channels) {
		return nil, fmt.Errorf("short scan response: %d fields for %d channels", len(raw), len(channels))
	}

	result := &ScanResult{
		Raw:       raw,
		Channels:  channels,
		Readings:  make(map[int]Measurement, len(channels)),
		Timestamp: timestamp,
	}

	var lastValue float64
	channelIndex := 0
	for i, entry := range raw {
		switch i % entriesPerChannel {
		case 0:
			value, err := scpi.ParseReading(entry)
			if err != nil {
				return nil, fmt.Errorf("bad value field %d: %w", i, err)
			}
			lastValue = value
		case 1:
			if !userTimestamp {
				deviceTime, err := scpi.ParseReading(entry)
				if err != nil {
					return nil, fmt.Errorf("bad time field %d: %w", i, err)
				}
				if result.Timestamp != 0 {
					result.Timestamp = deviceTime - result.Timestamp
				}
				result.DeviceTime = deviceTime
				if result.DeviceTime == 0 {
					result.DeviceTime = 1e-6
				}
			}
			if channelIndex >= len(channels) {
				return nil, fmt.Errorf("scan response has more readings than the %d defined channels", len(channels))
			}
			ch := channels[channelIndex]
			result.Readings[ch.ID] = Measurement{
				ChannelID: ch.ID,
				Time:      roundTo(result.Timestamp, rounding),
				Value:     lastValue,
				Unit:      ch.Unit,
			}
			channelIndex++
		}
	}

	return result, nil
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// csvHeader renders the column headings for a set of channels.
func csvHeader(channels []*Channel) string {
	cols := make([]string, 0, 2*len(channels))
	for _, ch := range channels {
		cols = append(cols,
			fmt.Sprintf("Channel %d Time (s)", ch.ID),
			fmt.Sprintf("Channel %d Value (%s)", ch.ID, ch.Unit),
		)
	}
	return strings.Join(cols, ",")
}

// CSVHeader renders the column headings matching CSVRow.
func (r *ScanResult) CSVHeader() string {
	return csvHeader(r.Channels)
}

// CSVRow renders the readings as one CSV row, channels in scan order.
func (r *ScanResult) CSVRow() string {
	cols := make([]string, 0, 2*len(r.Channels))
	for _, ch := range r.Channels {
		reading := r.Readings[ch.ID]
		cols = append(cols,
			formatFloat(reading.Time),
			formatFloat(reading.Value),
		)
	}
	return strings.Join(cols, ",")
}

// formatFloat renders a float without exponent noise for typical bench
// magnitudes.
func formatFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}

// String renders the raw instrument response, mainly for debug logs.
func (r *ScanResult) String() string {
	return strings.Join(r.Raw, ",")
}
