package config

import "context"

// Loader is the interface for a format-specific session loader. Load
// reads one session file or a directory of them, merges the fragments
// and returns the validated session.
type Loader interface {
	Load(ctx context.Context, path string) (*Session, error)
}
