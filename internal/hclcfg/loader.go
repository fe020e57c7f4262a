package hclcfg

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/k2700go/internal/config"
	"github.com/specialistvlad/k2700go/internal/ctxlog"
	"github.com/specialistvlad/k2700go/internal/fsutil"
	"github.com/specialistvlad/k2700go/internal/transport"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL session loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses one .hcl file or every .hcl file under a directory,
// expects exactly one session block among them, and returns the
// validated session.
func (l *Loader) Load(ctx context.Context, path string) (*config.Session, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl session files under %s", path)
	}
	logger.Debug("Discovered session files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext()

	var sessions []*sessionBlock
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}
		sessions = append(sessions, root.Sessions...)
	}

	switch len(sessions) {
	case 0:
		return nil, fmt.Errorf("no session block found under %s", path)
	case 1:
	default:
		return nil, fmt.Errorf("found %d session blocks under %s, expected exactly one", len(sessions), path)
	}

	session, err := l.translate(sessions[0])
	if err != nil {
		return nil, err
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Session loaded.", "session", session.Name, "groups", len(session.Groups))
	return session, nil
}

// translate converts the HCL-specific schema into the agnostic model,
// parsing the duration strings along the way.
func (l *Loader) translate(s *sessionBlock) (*config.Session, error) {
	session := &config.Session{
		Name:             s.Name,
		TemperatureUnits: s.TemperatureUnits,
	}

	if s.Connection == nil {
		return nil, fmt.Errorf("session %q has no connection block", s.Name)
	}
	session.Connection = transport.Settings{
		Kind:        s.Connection.Transport,
		Port:        s.Connection.Port,
		Address:     s.Connection.Address,
		BaudRate:    s.Connection.BaudRate,
		FlowControl: s.Connection.FlowControl,
	}
	if s.Connection.Timeout != "" {
		timeout, err := time.ParseDuration(s.Connection.Timeout)
		if err != nil {
			return nil, fmt.Errorf("session %q: bad connection timeout: %w", s.Name, err)
		}
		session.Connection.DialTimeout = timeout
	}

	for _, ch := range s.Channels {
		session.Groups = append(session.Groups, config.ChannelGroup{
			Name:     ch.Name,
			IDs:      ch.IDs,
			Function: ch.Function,
			Probe:    ch.Probe,
		})
	}

	session.Scan.Rounding = config.DefaultRounding
	if s.Scan != nil {
		if s.Scan.Interval != "" {
			interval, err := time.ParseDuration(s.Scan.Interval)
			if err != nil {
				return nil, fmt.Errorf("session %q: bad scan interval: %w", s.Name, err)
			}
			session.Scan.Interval = interval
		}
		session.Scan.Count = s.Scan.Count
		if s.Scan.Rounding != nil {
			session.Scan.Rounding = *s.Scan.Rounding
		}
	}

	if s.Output != nil {
		session.Output = config.Output{
			CSVPath:   s.Output.CSVPath,
			UploadURL: s.Output.UploadURL,
		}
	}

	if s.StatusServer != nil {
		session.StatusPort = s.StatusServer.Port
	}

	return session, nil
}
