package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// SessionPath points at a session .hcl file or a directory of them.
	SessionPath string

	// Probe runs the connectivity test instead of a scan session.
	Probe bool
	// ListPorts enumerates serial devices instead of running a session.
	ListPorts bool

	LogFormat string
	LogLevel  string

	// StatusPort overrides the session's status server port when zero or
	// positive; zero disables the server. Negative means no override.
	StatusPort int
}

// NewConfig validates a Config. Every mode except port listing needs a
// session file for its connection settings.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SessionPath == "" && !cfg.ListPorts {
		return nil, errors.New("a session path is required")
	}
	return &cfg, nil
}
