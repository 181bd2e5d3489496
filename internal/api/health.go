package api

import (
	"net/http"
	"time"
)

// HealthResponse reports service status for monitoring.
type HealthResponse struct {
	Status        string `json:"status"`
	EngineVersion string `json:"engine_version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	LiveSessions  int    `json:"live_sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		EngineVersion: EngineVersion,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		LiveSessions:  s.sessions.Len(),
	})
}

// handleLiveness reports whether the process is up at all.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// handleReadiness reports whether the service can accept plays, which needs
// a reachable database.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if _, err := s.db.ListStrategies(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, ErrTypeInternal, "database not ready", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
