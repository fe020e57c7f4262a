package hclcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/k2700go/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSession writes an HCL fixture and returns its path.
func writeSession(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const fullSession = `
session "bench" {
  temperature_units = "F"

  connection {
    transport = "serial"
    port      = "/dev/ttyUSB0"
    baud_rate = 19200
    timeout   = "3s"
  }

  channels "probes" {
    ids      = [101, 102]
    function = "temperature"
    probe    = "K"
  }

  channels "rails" {
    ids      = [110]
    function = "dc_volts"
  }

  scan {
    interval = "2s"
    count    = 10
    rounding = 3
  }

  output {
    csv_path   = "readings.csv"
    upload_url = "https://bucket.example/presigned"
  }

  status_server {
    port = 8080
  }
}
`

func TestLoadFullSession(t *testing.T) {
	loader := NewLoader()
	session, err := loader.Load(context.Background(), writeSession(t, fullSession))
	require.NoError(t, err)

	assert.Equal(t, "bench", session.Name)
	assert.Equal(t, "F", session.TemperatureUnits)

	assert.Equal(t, transport.KindSerial, session.Connection.Kind)
	assert.Equal(t, "/dev/ttyUSB0", session.Connection.Port)
	assert.Equal(t, 19200, session.Connection.BaudRate)
	assert.Equal(t, 3*time.Second, session.Connection.DialTimeout)

	require.Len(t, session.Groups, 2)
	assert.Equal(t, []int{101, 102}, session.Groups[0].IDs)
	assert.Equal(t, "temperature", session.Groups[0].Function)
	assert.Equal(t, "K", session.Groups[0].Probe)
	assert.Equal(t, "dc_volts", session.Groups[1].Function)

	assert.Equal(t, 2*time.Second, session.Scan.Interval)
	assert.Equal(t, 10, session.Scan.Count)
	assert.Equal(t, 3, session.Scan.Rounding)

	assert.Equal(t, "readings.csv", session.Output.CSVPath)
	assert.Equal(t, "https://bucket.example/presigned", session.Output.UploadURL)
	assert.Equal(t, 8080, session.StatusPort)
}

func TestLoadAppliesDefaults(t *testing.T) {
	loader := NewLoader()
	session, err := loader.Load(context.Background(), writeSession(t, `
session "minimal" {
  connection {
    transport = "tcp"
    address   = "10.0.0.5:1394"
  }
  channels "rails" {
    ids      = [110]
    function = "dc_volts"
  }
}
`))
	require.NoError(t, err)

	assert.Equal(t, transport.DefaultBaudRate, session.Connection.BaudRate)
	assert.Equal(t, "none", session.Connection.FlowControl)
	assert.Equal(t, 2, session.Scan.Rounding)
	assert.Zero(t, session.Scan.Count)
}

func TestLoadKeepsExplicitZeroRounding(t *testing.T) {
	loader := NewLoader()
	session, err := loader.Load(context.Background(), writeSession(t, `
session "coarse" {
  connection {
    transport = "tcp"
    address   = "10.0.0.5:1394"
  }
  channels "rails" {
    ids      = [110]
    function = "dc_volts"
  }
  scan {
    rounding = 0
  }
}
`))
	require.NoError(t, err)

	// Whole-second timestamps were asked for; the default must not
	// paper over them.
	assert.Zero(t, session.Scan.Rounding)
}

func TestLoadResolvesEnvironment(t *testing.T) {
	t.Setenv("K2700_TEST_PORT", "/dev/ttyACM3")

	loader := NewLoader()
	session, err := loader.Load(context.Background(), writeSession(t, `
session "envbench" {
  connection {
    transport = "serial"
    port      = env.K2700_TEST_PORT
  }
  channels "rails" {
    ids      = [110]
    function = "dc_volts"
  }
}
`))
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM3", session.Connection.Port)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bench.hcl"), []byte(fullSession), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	loader := NewLoader()
	session, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "bench", session.Name)
}

func TestLoadRejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid hcl",
			content: `session "x" {`,
			wantErr: "failed to parse",
		},
		{
			name:    "no session block",
			content: `# empty file`,
			wantErr: "no session block",
		},
		{
			name: "missing connection",
			content: `
session "x" {
  channels "a" {
    ids      = [101]
    function = "dc_volts"
  }
}`,
			wantErr: "no connection block",
		},
		{
			name: "bad interval",
			content: `
session "x" {
  connection {
    transport = "tcp"
    address   = "h:1"
  }
  channels "a" {
    ids      = [101]
    function = "dc_volts"
  }
  scan {
    interval = "soon"
  }
}`,
			wantErr: "bad scan interval",
		},
		{
			name: "unknown function",
			content: `
session "x" {
  connection {
    transport = "tcp"
    address   = "h:1"
  }
  channels "a" {
    ids      = [101]
    function = "frequency"
  }
}`,
			wantErr: "unknown function",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewLoader()
			_, err := loader.Load(context.Background(), writeSession(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadRejectsMultipleSessions(t *testing.T) {
	dir := t.TempDir()
	single := `
session %q {
  connection {
    transport = "tcp"
    address   = "h:1"
  }
  channels "a" {
    ids      = [101]
    function = "dc_volts"
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(fmt.Sprintf(single, "one")), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(fmt.Sprintf(single, "two")), 0644))

	loader := NewLoader()
	_, err := loader.Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected exactly one")
}
