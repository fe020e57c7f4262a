// Package transport opens the raw byte stream to the instrument.
//
// Two transports are supported: an RS-232 serial line (the 2700's native
// interface, enabled through its front-panel RS-232 menu) and a raw TCP
// socket for meters attached through a serial-to-ethernet bridge. The
// Dialer interface exists so tests can substitute a simulated instrument
// for real hardware.
package transport
