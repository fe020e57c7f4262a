package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChannels(t *testing.T) []*Channel {
	t.Helper()
	tc, err := Thermocouple("K")
	require.NoError(t, err)
	return []*Channel{
		newChannel(101, tc, "C"),
		newChannel(110, DCVolts(), "V"),
	}
}

func TestNewScanResultDecodesTriples(t *testing.T) {
	channels := testChannels(t)
	raw := []string{
		"+2.25000000E+01C", "+5.00000000E+00SECS", "+00001RDNG#",
		"+3.30000000E+00VDC", "+5.10000000E+00SECS", "+00002RDNG#",
	}

	result, err := newScanResult(channels, raw, 0, 2, false)
	require.NoError(t, err)

	require.Len(t, result.Readings, 2)
	assert.InDelta(t, 22.5, result.Readings[101].Value, 1e-9)
	assert.InDelta(t, 3.3, result.Readings[110].Value, 1e-9)
	// Device time of the last triple wins.
	assert.InDelta(t, 5.1, result.DeviceTime, 1e-9)
}

func TestNewScanResultRejectsShortResponse(t *testing.T) {
	channels := testChannels(t)
	raw := []string{"+2.25000000E+01C", "+5.00000000E+00SECS", "+00001RDNG#"}

	_, err := newScanResult(channels, raw, 0, 2, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short scan response")
}

func TestNewScanResultZeroDeviceClockForcedToMicrosecond(t *testing.T) {
	channels := testChannels(t)[:1]
	raw := []string{"+1.00000000E+00VDC", "+0.00000000E+00SECS", "+00001RDNG#"}

	result, err := newScanResult(channels, raw, 0, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 1e-6, result.DeviceTime)
}

func TestNewScanResultUserTimestampIgnoresDeviceClock(t *testing.T) {
	channels := testChannels(t)[:1]
	raw := []string{"+1.00000000E+00VDC", "+9.99000000E+02SECS", "+00001RDNG#"}

	result, err := newScanResult(channels, raw, 42.0, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 42.0, result.Readings[101].Time)
	assert.Equal(t, 0.0, result.DeviceTime)
}

func TestCSVHeaderAndRow(t *testing.T) {
	channels := testChannels(t)
	raw := []string{
		"+2.25000000E+01C", "+5.00000000E+00SECS", "+00001RDNG#",
		"+3.30000000E+00VDC", "+5.10000000E+00SECS", "+00002RDNG#",
	}
	result, err := newScanResult(channels, raw, 7.5, 2, true)
	require.NoError(t, err)

	assert.Equal(t,
		"Channel 101 Time (s),Channel 101 Value (C),Channel 110 Time (s),Channel 110 Value (V)",
		result.CSVHeader())
	assert.Equal(t, "7.5,22.5,7.5,3.3", result.CSVRow())
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.23, roundTo(1.2341, 2))
	assert.Equal(t, 1.235, roundTo(1.2346, 3))
	assert.Equal(t, 0.0, roundTo(0, 2))
}
