package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger().WithFields(logrus.Fields{
	"component": "health",
})

// Degraded is the gateway heartbeat latency at which the bot reports itself
// unhealthy.
const Degraded = 10 * time.Second

type Heartbeater interface {
	HeartbeatLatency() time.Duration
}

type Server struct {
	discord Heartbeater
}

func NewServer(discord Heartbeater) *Server {
	return &Server{discord: discord}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.Health)
	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	latency := s.discord.HeartbeatLatency()
	healthy := latency < Degraded

	details := map[string]interface{}{
		"healthy":            healthy,
		"discord_latency_ms": latency.Milliseconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusInternalServerError)
	}

	if err := json.NewEncoder(w).Encode(details); err != nil {
		log.WithError(err).Error("encode health checks")
	}
}

// ListenAndServe serves the health routes on addr until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	log.WithField("addr", addr).Info("serving health checks on /health")
	return http.ListenAndServe(addr, s.Routes())
}
