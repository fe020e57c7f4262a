// Package simulator emulates enough of a Keithley 2700 to exercise the
// full toolkit without hardware.
//
// An Instrument answers the SCPI subset the meter package speaks over an
// in-memory pipe: identification, reset and routing commands, scan
// configuration and READ? responses synthesized from test-provided
// channel values. Its Dialer satisfies transport.Dialer so the whole App
// can run against it in integration tests.
package simulator
