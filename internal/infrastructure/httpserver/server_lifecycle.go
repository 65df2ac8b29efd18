package httpserver

import (
	"context"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, s.config.Port)

	tls := s.config.TLSCertFile != "" && s.config.TLSKeyFile != ""
	s.logger.WithFields(logrus.Fields{"addr": addr, "tls": tls}).Info("starting http server")

	if tls {
		return s.echo.StartTLS(addr, s.config.TLSCertFile, s.config.TLSKeyFile)
	}

	return s.echo.StartServer(&http.Server{
		Addr:         addr,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	})
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
