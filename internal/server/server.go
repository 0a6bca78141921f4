package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/user/ytharvest-go/internal/ingest"
	"github.com/user/ytharvest-go/internal/store"
	"github.com/user/ytharvest-go/internal/youtube"
)

// Prometheus metrics for the ingestion pipeline.
var (
	videosTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ytharvest_videos_total",
		Help: "Total number of videos in the database",
	})

	rowsIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ytharvest_rows_ingested_total",
		Help: "Total number of rows inserted per stage",
	}, []string{"stage"})

	stageDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ytharvest_stage_duration_seconds",
		Help:    "Duration of ingestion stage runs in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	stageErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ytharvest_stage_errors_total",
		Help: "Total number of stage failures by kind",
	}, []string{"stage", "kind"})
)

func init() {
	prometheus.MustRegister(videosTotal)
	prometheus.MustRegister(rowsIngestedTotal)
	prometheus.MustRegister(stageDurationSeconds)
	prometheus.MustRegister(stageErrorsTotal)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// errorResponse is the JSON body for failed trigger requests.
type errorResponse struct {
	Error string `json:"error"`
}

// stageFunc is one orchestrator entry point; the channel identifier alone
// determines the full fetch set for every stage.
type stageFunc func(ctx context.Context, channelID string) (*ingest.Outcome, error)

// Server exposes the trigger boundary: one endpoint per ingestion stage,
// plus health and metrics.
type Server struct {
	store     store.Store
	ingest    *ingest.Service
	router    *http.ServeMux
	server    *http.Server
	startTime time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(st store.Store, svc *ingest.Service) *Server {
	s := &Server{
		store:     st,
		ingest:    svc,
		router:    http.NewServeMux(),
		startTime: time.Now(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/ingest/channel", s.handleStage(ingest.StageChannel, s.ingest.IngestChannel))
	s.router.HandleFunc("/ingest/playlists", s.handleStage(ingest.StagePlaylists, s.ingest.IngestPlaylists))
	s.router.HandleFunc("/ingest/videos", s.handleStage(ingest.StageVideos, s.ingest.IngestVideos))
	s.router.HandleFunc("/ingest/comments", s.handleStage(ingest.StageComments, s.ingest.IngestComments))

	s.router.HandleFunc("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start begins listening on the specified port
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	log.Info().Int("port", port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Info().Msg("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// handleStage runs one ingestion stage synchronously and reports its
// outcome. Stage runs can be long (a full paginated walk), so no write
// timeout is applied to these routes.
func (s *Server) handleStage(stage string, fn stageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "POST required"})
			return
		}
		channelID := r.URL.Query().Get("channel_id")
		if channelID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "channel_id is required"})
			return
		}

		start := time.Now()
		outcome, err := fn(r.Context(), channelID)
		stageDurationSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())

		if err != nil {
			s.writeStageError(w, stage, channelID, outcome, err)
			return
		}

		rowsIngestedTotal.WithLabelValues(stage).Add(float64(outcome.Inserted))
		writeJSON(w, http.StatusOK, outcome)
	}
}

// writeStageError maps stage failures onto the HTTP surface: channel
// re-ingestion is a conflict, an upstream-missing channel is a 404, a
// transport failure is a bad gateway, everything else is internal.
func (s *Server) writeStageError(w http.ResponseWriter, stage, channelID string, outcome *ingest.Outcome, err error) {
	var te *youtube.TransportError

	switch {
	case errors.Is(err, ingest.ErrAlreadyExists):
		stageErrorsTotal.WithLabelValues(stage, "already_exists").Inc()
		writeJSON(w, http.StatusConflict, outcome)
	case errors.Is(err, youtube.ErrNotFound):
		stageErrorsTotal.WithLabelValues(stage, "not_found").Inc()
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &te):
		stageErrorsTotal.WithLabelValues(stage, "transport").Inc()
		log.Error().Err(err).Str("stage", stage).Str("channelId", channelID).Msg("Stage aborted by transport failure")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		stageErrorsTotal.WithLabelValues(stage, "internal").Inc()
		log.Error().Err(err).Str("stage", stage).Str("channelId", channelID).Msg("Stage failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// handleHealth reports database connectivity and uptime, and refreshes
// the stored-video gauge.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		dbStatus = fmt.Sprintf("unhealthy: %v", err)
	} else if count, err := s.store.CountVideos(ctx); err == nil {
		videosTotal.Set(float64(count))
	}

	uptime := time.Since(s.startTime).Round(time.Second).String()

	status := "healthy"
	code := http.StatusOK
	if dbStatus != "healthy" {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:   status,
		Database: dbStatus,
		Uptime:   uptime,
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// GetUptime returns the server uptime
func (s *Server) GetUptime() time.Duration {
	return time.Since(s.startTime)
}
