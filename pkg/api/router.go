// Package api is the HTTP presentation surface over the carnot core: a JSON
// API for efficiency, sweep and cycle queries, a CSV export, the preset
// comparison table and a Prometheus metrics endpoint.
package api

import (
	"sync"

	"github.com/gorilla/mux"

	"github.com/thermolab/carnot/pkg/preset"
)

// Server bundles the router state: the current preset table (swappable at
// runtime via SetPresets) and the metrics instruments.
type Server struct {
	mu      sync.RWMutex
	presets []preset.Preset

	metrics *Metrics
}

// NewServer builds a Server around the given preset table. A nil table means
// the built-in defaults.
func NewServer(presets []preset.Preset) *Server {
	if presets == nil {
		presets = preset.Defaults()
	}
	return &Server{presets: presets, metrics: NewMetrics()}
}

// Presets returns the current preset table.
func (s *Server) Presets() []preset.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presets
}

// SetPresets swaps the preset table; used by the serve command's file
// watcher.
func (s *Server) SetPresets(presets []preset.Preset) {
	s.mu.Lock()
	s.presets = presets
	s.mu.Unlock()
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.metrics.instrument("health", healthHandler)).Methods("GET")
	r.HandleFunc("/api/efficiency", s.metrics.instrument("efficiency", s.efficiencyHandler)).Methods("GET")
	r.HandleFunc("/api/sweep", s.metrics.instrument("sweep", s.sweepHandler)).Methods("GET")
	r.HandleFunc("/api/cycle", s.metrics.instrument("cycle", s.cycleHandler)).Methods("GET")
	r.HandleFunc("/api/presets", s.metrics.instrument("presets", s.presetsHandler)).Methods("GET")
	r.HandleFunc("/api/export", s.metrics.instrument("export", s.exportHandler)).Methods("GET")
	r.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	return r
}
