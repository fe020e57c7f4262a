// Package recorder persists scan results.
//
// A Recorder streams results to a CSV file, writing the header on the
// first result and one row per scan after that. Once a run finishes, the
// file can optionally be pushed to an HTTP endpoint (typically an S3
// pre-signed PUT URL) with Upload.
package recorder
