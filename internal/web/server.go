// Package web serves the Knowledge Navigator browser UI and JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/config"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/logging"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
)

// Options configures a Server.
type Options struct {
	Router *feature.Router

	// Events is the model request log shown on /llm. May be nil.
	Events store.LLMEventRepo

	Config config.ServerConfig
	Logger logrus.FieldLogger
}

// Server holds the HTTP handlers. Per-user state lives in the session
// manager; everything else is read-only after New.
type Server struct {
	router   *feature.Router
	events   store.LLMEventRepo
	cfg      config.ServerConfig
	log      logrus.FieldLogger
	sessions *scs.SessionManager
	pages    map[string]*template.Template
	md       goldmark.Markdown
}

// New builds a Server and parses its templates.
func New(opts Options) (*Server, error) {
	if opts.Router == nil {
		return nil, errors.New("web: feature router is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Config.MaxUploadMB <= 0 {
		opts.Config.MaxUploadMB = config.Default().Server.MaxUploadMB
	}
	if opts.Config.RequestTimeout <= 0 {
		opts.Config.RequestTimeout = config.Default().Server.RequestTimeout
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	sessions := scs.New()
	sessions.Cookie.Name = "knav_session"
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Persist = false
	if opts.Config.SessionLifetime > 0 {
		sessions.IdleTimeout = opts.Config.SessionLifetime
	}

	return &Server{
		router:   opts.Router,
		events:   opts.Events,
		cfg:      opts.Config,
		log:      opts.Logger,
		sessions: sessions,
		pages:    pages,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

func (s *Server) maxUpload() int64 {
	return int64(s.cfg.MaxUploadMB) << 20
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(logging.RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	static, _ := fs.Sub(assets, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.LoadAndSave)

		r.Get("/", s.handleHome)
		r.Get("/mcq", s.handleMCQ)
		r.Post("/mcq", s.handleMCQ)
		r.Get("/pdf-qa", s.handlePDFQA)
		r.Post("/pdf-qa", s.handlePDFQA)
		r.Get("/csv", s.handleCSV)
		r.Post("/csv", s.handleCSV)
		r.Get("/research", s.handleResearch)
		r.Post("/research", s.handleResearch)
		r.Get("/qa-evaluator", s.handleQAEvaluator)
		r.Post("/qa-evaluator", s.handleQAEvaluator)
		r.Get("/study-plan", s.handleStudyPlan)
		r.Post("/study-plan", s.handleStudyPlan)
		r.Get("/quiz", s.handleQuiz)
		r.Post("/quiz/answer", s.handleQuizAnswer)
		r.Post("/quiz/restart", s.handleQuizRestart)
		r.Get("/concept-map", s.handleConceptMap)
		r.Post("/concept-map", s.handleConceptMap)
		r.Get("/summary", s.handleSummary)
		r.Post("/summary", s.handleSummary)
		r.Get("/llm", s.handleLLMEvents)
		r.Get("/llm/{id}", s.handleLLMEvent)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   s.cfg.CORSOrigins,
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"Content-Type"},
				ExposedHeaders:   []string{"Content-Length"},
				AllowCredentials: false,
				MaxAge:           300,
			}))
			s.apiRoutes(r)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderStatus(w, r, http.StatusNotFound, "Page not found.")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("knowledge navigator listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	gw := s.router.Gateway()
	resp := map[string]any{
		"status":          "ready",
		"model_available": gw.Available(),
		"model":           gw.ModelID(),
	}
	if cause := gw.Cause(); cause != nil {
		resp["model_error"] = cause.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}
