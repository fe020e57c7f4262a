// Package scpi implements the line-oriented SCPI conversation the
// Keithley 2700 speaks over a raw byte stream.
//
// The instrument expects every transmitted command to be terminated with
// CRLF and terminates its own responses with a line feed. Conn wraps any
// io.ReadWriteCloser (a serial port, a TCP socket, or a simulator in
// tests) and takes care of the framing, so callers deal only in command
// strings and response strings.
//
// The package also carries the small parsing helpers the 2700's response
// format requires: readings come back as unit-tagged engineering strings
// like "+2.27246074E+01C", and a scan response is a flat comma-separated
// list of value/time/count triples.
package scpi
