package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// statusServer serves the health and live readings endpoints while a
// scan session runs.
type statusServer struct {
	server *http.Server
}

// healthHandler reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// readingsHandler serves the most recent scan as JSON, or 204 before
// the first scan completes.
func (a *App) readingsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := a.store.Snapshot()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		a.logger.Error("Failed to encode readings snapshot", "error", err)
	}
}

// statusMux wires the status endpoints.
func (a *App) statusMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/readings", a.readingsHandler)
	return mux
}

// startStatusServer binds the status port and serves in the background.
// Binding happens synchronously so a busy port fails the run up front.
func (a *App) startStatusServer(port int) (*statusServer, error) {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind status server on %s: %w", addr, err)
	}

	s := &statusServer{
		server: &http.Server{Handler: a.statusMux()},
	}

	go func() {
		a.logger.Info("🩺 Status server started", "address", fmt.Sprintf("http://localhost%s/readings", addr))
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()

	return s, nil
}

// Close shuts the status server down.
func (s *statusServer) Close() error {
	return s.server.Close()
}
