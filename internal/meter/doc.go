// Package meter drives a Keithley Multimeter 2700 over a SCPI connection.
//
// The lifecycle mirrors how the bench instrument is actually operated:
// construct a Multimeter (which resets and clears the device), define
// groups of card channels with a measurement type, complete the scan
// setup, then scan repeatedly. Each scan returns a ScanResult holding one
// timestamped Measurement per channel, renderable as CSV.
package meter
