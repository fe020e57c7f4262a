// Package readings provides an ephemeral, thread-safe snapshot of the
// most recent scan.
//
// The scan loop writes each ScanResult here and the status HTTP server
// reads it back, so the two never share the Multimeter itself. The store
// is created fresh per run and holds only the latest result plus a scan
// counter; full history lives in the CSV recorder.
package readings

import (
	"sync"
	"time"

	"github.com/specialistvlad/k2700go/internal/meter"
)

// Store holds the latest scan result under a read-write mutex. Reads
// vastly outnumber writes (one write per scan pass, a read per status
// request), so an RWMutex fits.
type Store struct {
	mu      sync.RWMutex
	latest  *meter.ScanResult
	scans   int
	takenAt time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Record replaces the latest result and bumps the scan counter.
func (s *Store) Record(result *meter.ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = result
	s.scans++
	s.takenAt = time.Now()
}

// Latest returns the most recent result, or nil before the first scan.
func (s *Store) Latest() *meter.ScanResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Snapshot is the JSON shape served by the status endpoint.
type Snapshot struct {
	Scans    int                       `json:"scans"`
	TakenAt  time.Time                 `json:"taken_at"`
	Readings map[int]meter.Measurement `json:"readings"`
}

// Snapshot returns the latest result in its servable form and whether a
// scan has happened yet.
func (s *Store) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Snapshot{}, false
	}
	return Snapshot{
		Scans:    s.scans,
		TakenAt:  s.takenAt,
		Readings: s.latest.Readings,
	}, true
}
