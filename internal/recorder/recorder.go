package recorder

import (
	"bufio"
	"fmt"
	"os"

	"github.com/specialistvlad/k2700go/internal/meter"
)

// Recorder appends scan results to a CSV file.
type Recorder struct {
	path        string
	file        *os.File
	writer      *bufio.Writer
	wroteHeader bool
	rows        int
}

// New creates (or truncates) the CSV file at path.
func New(path string) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create readings file %s: %w", path, err)
	}
	return &Recorder{
		path:   path,
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Path returns the location of the readings file.
func (r *Recorder) Path() string {
	return r.path
}

// Rows returns the number of data rows written so far.
func (r *Recorder) Rows() int {
	return r.rows
}

// Write appends one scan result, emitting the header first if this is
// the initial row.
func (r *Recorder) Write(result *meter.ScanResult) error {
	if !r.wroteHeader {
		if _, err := r.writer.WriteString(result.CSVHeader() + "\n"); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		r.wroteHeader = true
	}
	if _, err := r.writer.WriteString(result.CSVRow() + "\n"); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	r.rows++
	return nil
}

// Close flushes buffered rows and syncs the file to disk.
func (r *Recorder) Close() error {
	if err := r.writer.Flush(); err != nil {
		r.file.Close()
		return fmt.Errorf("failed to flush readings file: %w", err)
	}
	if err := r.file.Sync(); err != nil {
		r.file.Close()
		return fmt.Errorf("failed to sync readings file: %w", err)
	}
	return r.file.Close()
}
