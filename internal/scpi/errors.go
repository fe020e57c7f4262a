package scpi

import "errors"

// ErrConnClosed is returned for operations on a connection that has
// already been closed, including one torn down by a context timeout.
var ErrConnClosed = errors.New("scpi: connection closed")
