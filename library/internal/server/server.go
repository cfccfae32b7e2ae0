package server

import (
	"context"
	"net"
	"net/http"

	"github.com/helcv/Valcon-Internship-Library-Project/library/config"
	"github.com/pkg/errors"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.HTTPServer, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}
}

// Run blocks until the server stops. A graceful Stop is not an error.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
