package hclcfg

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of any session file.
type fileRoot struct {
	Sessions []*sessionBlock `hcl:"session,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

// sessionBlock is the HCL shape of a `session` block.
type sessionBlock struct {
	Name             string             `hcl:"name,label"`
	TemperatureUnits string             `hcl:"temperature_units,optional"`
	Connection       *connectionBlock   `hcl:"connection,block"`
	Channels         []*channelsBlock   `hcl:"channels,block"`
	Scan             *scanBlock         `hcl:"scan,block"`
	Output           *outputBlock       `hcl:"output,block"`
	StatusServer     *statusServerBlock `hcl:"status_server,block"`
}

// connectionBlock describes how to reach the instrument.
type connectionBlock struct {
	Transport   string `hcl:"transport"`
	Port        string `hcl:"port,optional"`
	Address     string `hcl:"address,optional"`
	BaudRate    int    `hcl:"baud_rate,optional"`
	FlowControl string `hcl:"flow_control,optional"`
	Timeout     string `hcl:"timeout,optional"`
}

// channelsBlock binds channel ids to a measurement function.
type channelsBlock struct {
	Name     string `hcl:"name,label"`
	IDs      []int  `hcl:"ids"`
	Function string `hcl:"function"`
	Probe    string `hcl:"probe,optional"`
}

// scanBlock controls the scan loop cadence. Rounding is a pointer so an
// explicit `rounding = 0` (whole seconds) is distinguishable from the
// attribute being absent.
type scanBlock struct {
	Interval string `hcl:"interval,optional"`
	Count    int    `hcl:"count,optional"`
	Rounding *int   `hcl:"rounding,optional"`
}

// outputBlock says where readings are written.
type outputBlock struct {
	CSVPath   string `hcl:"csv_path,optional"`
	UploadURL string `hcl:"upload_url,optional"`
}

// statusServerBlock enables the live readings HTTP endpoint.
type statusServerBlock struct {
	Port int `hcl:"port"`
}
