package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/netutil"
)

const DefaultShutdownTimeout = 5 * time.Second

type ServerConfig struct {
	Addr        string
	ReadTimeout time.Duration
	MaxConns    int // <= 0 leaves connections unbounded
	Logger      *zap.Logger
}

// Server owns the listener and http.Server for one handler.
type Server struct {
	listener net.Listener
	server   *http.Server
	logger   *zap.Logger
	errCh    chan error
	stopOnce sync.Once
}

// Start listens on cfg.Addr and serves handler in the background. An empty
// address picks a free loopback port.
func Start(cfg ServerConfig, handler http.Handler) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:0"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen http server: %w", err)
	}
	if cfg.MaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxConns)
	}

	s := &Server{
		listener: listener,
		server: &http.Server{
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: cfg.Logger,
		errCh:  make(chan error, 1),
	}

	go func() {
		defer close(s.errCh)
		if serveErr := s.server.Serve(s.listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.errCh <- serveErr
		}
	}()

	s.logger.Info("http server listening", zap.String("addr", s.Addr()))
	return s, nil
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// URL is the base URL clients on this host reach the server at.
func (s *Server) URL() string {
	if tcpAddr, ok := s.listener.Addr().(*net.TCPAddr); ok && tcpAddr.IP.IsUnspecified() {
		return fmt.Sprintf("http://localhost:%d", tcpAddr.Port)
	}
	return "http://" + s.Addr()
}

// Err reports a fatal serve error. The channel is closed once serving stops.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Shutdown stops accepting connections and waits for in-flight requests until
// ctx ends, then forces the remaining ones closed.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.stopOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Warn("graceful shutdown incomplete", zap.Error(err))
			shutdownErr = errors.Join(err, s.server.Close())
		}
		s.logger.Info("http server stopped", zap.String("addr", s.Addr()))
	})
	return shutdownErr
}
