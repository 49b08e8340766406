// internal/httpserver/server.go
//
// HTTP server wiring for the daily geography puzzle.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     request logging, JSON, CORS).
//   - Public endpoints: "/", "/health", "/metrics", "/countries".
//   - Daily endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me.
//
// Notes:
//   - Guests play with an anonymous cookie id; signing up or logging in
//     moves their guesses to the account.
//   - Handlers never change puzzle semantics; they only resolve, score and
//     persist through the core packages.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geodle/internal/config"
	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/metrics"
	"github.com/robalobadob/geodle/internal/selector"
	"github.com/robalobadob/geodle/internal/store"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Config    config.Config
	Countries *countries.Table
	Selector  *selector.Selector
	Guesses   store.Store // defaults to the SQLite store on DB
	DB        *sql.DB
	Registry  *prometheus.Registry
	Now       func() time.Time
}

// Server bundles router, puzzle collaborators, and DB handle.
type Server struct {
	r         *chi.Mux
	cfg       config.Config
	countries *countries.Table
	targets   *targetResolver
	guesses   store.Store
	results   *store.SQLite
	db        *sql.DB
	metrics   *metrics.Metrics
	now       func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	results := store.NewSQLiteStore(d.DB)
	guesses := d.Guesses
	if guesses == nil {
		guesses = results
	}
	m := metrics.New(reg)

	s := &Server{
		r:         chi.NewRouter(),
		cfg:       d.Config,
		countries: d.Countries,
		targets:   newTargetResolver(d.Selector, m),
		guesses:   guesses,
		results:   results,
		db:        d.DB,
		metrics:   m,
		now:       now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(s.cfg.ClientOrigin))        // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "geodle",
			"endpoints": []string{
				"/health", "/metrics", "/countries",
				"GET /daily/today", "POST /daily/guess", "GET /daily/share",
				"/auth/*", "/stats/me", "/stats/me/export",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.r.Get("/countries", s.handleCountries)

	// Daily puzzle, OPTIONAL AUTH (guests can play)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// countryView is the public shape of a guessable country.
type countryView struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Small bool   `json:"small"`
}

// handleCountries lists every guessable country in reference order.
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	limit := s.countries.SmallLimit()
	all := s.countries.All()
	out := make([]countryView, 0, len(all))
	for _, c := range all {
		out = append(out, countryView{Code: c.Code, Name: c.Name, Small: c.IsSmall(limit)})
	}
	ordinary, small := s.countries.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"countries": out,
		"ordinary":  ordinary,
		"small":     small,
	})
}

// ------------------------------- small util --------------------------------

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
