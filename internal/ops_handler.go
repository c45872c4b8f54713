package internal

import (
	"context"
	"net/http"

	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (s *Server) setupOpsRoutes(r *mux.Router) {
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")
	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

// handleHealth pings every dependency. Any failure turns the whole status into 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthStatus{
		Status: "ok",
		Checks: make(map[string]string, len(s.healthChecks)),
	}
	for _, check := range s.healthChecks {
		if err := check.ping(ctx); err != nil {
			log.Errorf("health check [%s]: %s", check.name, err)
			resp.Checks[check.name] = "unavailable"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[check.name] = "ok"
	}

	statusCode := http.StatusOK
	if resp.Status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}
	pkg.WriteJSON(w, resp, statusCode)
}
