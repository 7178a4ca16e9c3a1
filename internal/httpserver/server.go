// internal/httpserver/server.go
//
// HTTP server wiring for the phrasechain backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Chain endpoints: GET /api/chain (the generation entry point),
//     GET /api/stats (aggregate outcomes).
//   - Best-effort play telemetry: one row per chain request, never fatal.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Generation failures never reach the client: the builder falls back to
//     curated chains, so /api/chain only 500s when the fallback table
//     itself is broken.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/phrasechain/go-server/internal/chain"
	"github.com/phrasechain/go-server/internal/fallback"
	"github.com/phrasechain/go-server/internal/plays"
)

// Server bundles router, chain builder, fallback table, and play telemetry.
type Server struct {
	r       *chi.Mux
	builder *chain.Builder
	table   *fallback.Table
	plays   *plays.Store
}

// New constructs a Server, installs middleware, and registers routes.
// The plays store may be nil, which disables telemetry and /api/stats.
func New(b *chain.Builder, table *fallback.Table, ps *plays.Store) *Server {
	s := &Server{r: chi.NewRouter(), builder: b, table: table, plays: ps}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"phrasechain-go","endpoints":["/health","GET /api/chain","GET /api/stats"]}`))
	})
	s.r.Get("/health", s.handleHealth)
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// --- chain API ---
	s.r.Get("/api/chain", s.handleChain)
	s.r.Get("/api/stats", s.handleStats)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	// Debug: fallback table size
	s.r.Get("/debug/chains", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"fallbackChains": s.table.Len()})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ handlers -----------------------------------

// healthRes is returned by /health.
type healthRes struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(healthRes{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleChain builds a fresh word chain and returns it as a JSON array.
// The builder guarantees a valid chain via fallback, so this only 500s on
// a broken fallback table.
func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res, err := s.builder.Build(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("chain generation failed")
		http.Error(w, `{"error":"generation_failed"}`, http.StatusInternalServerError)
		return
	}
	elapsed := time.Since(start)

	chainRequests.WithLabelValues(string(res.Source)).Inc()
	chainBuildSeconds.Observe(elapsed.Seconds())

	// Persist outcome (best effort, non-fatal if it fails)
	if s.plays != nil {
		p := plays.Play{Source: string(res.Source), Seed: res.Seed, DurationMs: int(elapsed.Milliseconds())}
		if err := s.plays.Insert(r.Context(), p); err != nil {
			log.Warn().Err(err).Msg("record play")
		}
	}

	_ = json.NewEncoder(w).Encode(res.Words)
}

// handleStats returns aggregate generated/fallback counts.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.plays == nil {
		http.Error(w, `{"error":"stats_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	t, err := s.plays.TotalsBySource(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load play totals")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(t)
}
