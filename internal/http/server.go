package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/Clark-Hu/scouting-api/internal/auth"
	"github.com/Clark-Hu/scouting-api/internal/config"
	"github.com/Clark-Hu/scouting-api/internal/logging"
	"github.com/Clark-Hu/scouting-api/internal/metrics"
	"github.com/Clark-Hu/scouting-api/internal/rating"
	"github.com/Clark-Hu/scouting-api/internal/repository"
	"github.com/Clark-Hu/scouting-api/internal/store"
	"github.com/Clark-Hu/scouting-api/internal/validation"
)

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg      config.Config
	store    *store.Store
	repo     *repository.Repository
	ratings  *rating.Service
	tokens   *auth.TokenIssuer
	metrics  *metrics.Metrics
	logger   *logging.Logger
	validate *validator.Validate
	router   chi.Router
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(
	cfg config.Config,
	st *store.Store,
	repo *repository.Repository,
	ratings *rating.Service,
	tokens *auth.TokenIssuer,
	m *metrics.Metrics,
	logger *logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	if m == nil {
		m = metrics.New()
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		repo:     repo,
		ratings:  ratings,
		tokens:   tokens,
		metrics:  m,
		logger:   logger.With("component", "http"),
		validate: validation.New(),
		router:   chi.NewRouter(),
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.softAuth)
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/olheiros", func(r chi.Router) {
		r.Post("/", s.handleRegisterObserver)
		r.Post("/login", s.handleLogin)
	})
	s.router.Route("/times", func(r chi.Router) {
		r.Get("/", s.handleListTeams)
		r.Post("/", s.handleCreateTeam)
	})
	s.router.Route("/jogadores", func(r chi.Router) {
		r.Get("/", s.handleListPlayers)
		r.Post("/", s.handleCreatePlayer)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetPlayer)
			r.Delete("/", s.handleDeletePlayer)
			r.Get("/estatisticas", s.handleGetPlayerStats)
		})
	})
	s.router.Route("/notas", func(r chi.Router) {
		r.Post("/", s.handleSubmitRating)
		r.Get("/minhas", s.handleOwnRatings)
		r.Get("/jogador/{id}", s.handleRatingSummary)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start boots the HTTP server and blocks until ctx ends or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		s.logger.Warn("health check failed", "error", err)
		s.respondFailure(w, http.StatusServiceUnavailable, reasonInternal, "Banco de dados indisponível")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "status": "ok"})
}
