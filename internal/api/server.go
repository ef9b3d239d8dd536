package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/npillmayer/betacode"
	"github.com/npillmayer/betacode/internal/config"
)

// Server is the HTTP API over a Betacode codec.
type Server struct {
	router chi.Router
	codec  *betacode.Codec
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(codec *betacode.Codec, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		codec: codec,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(BodyLimit(s.cfg.MaxBodyBytes))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/convert", s.handleConvertQuery)
		r.Post("/convert", s.handleConvertBatch)
		r.Post("/markup", s.handleMarkup)
		r.Get("/variants", s.handleVariants)
		r.Get("/symbols", s.handleSymbols)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
