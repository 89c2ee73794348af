package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"francoggm/paygw-wallet/internal/app/server/handlers"
	"francoggm/paygw-wallet/internal/config"
	"francoggm/paygw-wallet/internal/lang"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type SessionResolver interface {
	UserID(ctx context.Context, token string) (int64, error)
}

type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	router     *chi.Mux
	handlers   *handlers.Handlers
	sessions   SessionResolver
	strings    *lang.Manager
	httpServer *http.Server
}

func NewServer(cfg *config.Config, logger *zap.Logger, h *handlers.Handlers, sessions SessionResolver, strings *lang.Manager) *Server {
	srv := &Server{
		cfg:      cfg,
		logger:   logger,
		router:   chi.NewRouter(),
		handlers: h,
		sessions: sessions,
		strings:  strings,
	}

	srv.registerRoutes()
	srv.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           srv.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

func (s *Server) registerRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(echoRequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handlers.Health)

	s.router.Group(func(r chi.Router) {
		r.Use(s.language)
		r.Use(s.session)
		r.Post("/lib/ajax/service.php", s.handlers.CallServices)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(s.adminOnly)
		r.Get("/payments-summary", s.handlers.GetPaymentsSummary)
		r.Post("/purge-payment-events", s.handlers.PurgePaymentEvents)
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	s.logger.Info("Server listening", zap.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
