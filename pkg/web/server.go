// Package web serves the memory comparison as a browser page with a live
// animation pushed over a websocket.
package web

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Server represents the web server
type Server struct {
	config     Config
	httpServer *http.Server
	tlsConfig  *tls.Config
	logger     *log.Logger
	logFile    io.Closer
	upgrader   websocket.Upgrader
	listener   net.Listener
}

// NewServer creates a new web server
func NewServer(config Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logger
	server := &Server{
		config: config,
		logger: log.New(os.Stdout, "[web] ", log.LstdFlags),
	}
	if config.LogFile != "" {
		logFile, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		server.logger = log.New(logFile, "[web] ", log.LstdFlags)
		server.logFile = logFile
	}

	tlsConfig, err := config.LoadTLSConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS config: %w", err)
	}
	server.tlsConfig = tlsConfig

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}

	server.httpServer = &http.Server{
		Addr:        config.Addr(),
		Handler:     server.Handler(),
		TLSConfig:   tlsConfig,
		ErrorLog:    server.logger,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	return server, nil
}

// Handler returns the router with every endpoint registered
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.loggingMiddleware(s.pageHandler)).Methods(http.MethodGet)
	r.HandleFunc("/health", s.loggingMiddleware(healthHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/records", s.loggingMiddleware(recordsHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/chart", s.loggingMiddleware(chartHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/chart.svg", s.loggingMiddleware(chartSVGHandler)).Methods(http.MethodGet)
	// no logging wrapper: the hijacked connection outlives the request
	r.HandleFunc("/ws", s.sessionHandler).Methods(http.MethodGet)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}

// Listen binds the configured address. It is called by Start when needed.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	s.listener = listener
	return nil
}

// URL returns the address browsers should open. Listen must have been called.
func (s *Server) URL() string {
	scheme := "http"
	if s.tlsConfig != nil {
		scheme = "https"
	}
	host := s.config.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	port := s.config.Port
	if s.listener != nil {
		port = s.listener.Addr().(*net.TCPAddr).Port
	}
	return fmt.Sprintf("%s://%s:%d/", scheme, host, port)
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.logger.Printf("Serving GPU memory comparison on %s", s.URL())

	var err error
	if s.tlsConfig != nil {
		// certificates are already loaded in the TLS config
		err = s.httpServer.ServeTLS(s.listener, "", "")
	} else {
		err = s.httpServer.Serve(s.listener)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Println("Shutting down web server...")
	err := s.httpServer.Shutdown(ctx)
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
	return err
}

// loggingMiddleware logs incoming requests
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(wrapped, r)

		s.logger.Printf("%s %s %d %s duration=%s",
			r.Method,
			r.URL.Path,
			wrapped.statusCode,
			r.RemoteAddr,
			time.Since(start),
		)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// healthHandler returns server health status
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK\n")
}
