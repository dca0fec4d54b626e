// Package server exposes the ledger and its analytics over HTTP.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/etnz/networth/store"
	"github.com/gorilla/mux"
)

// Config holds server configuration.
type Config struct {
	Addr            string
	Currency        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the configuration used by the serve command.
func DefaultConfig() Config {
	return Config{
		Addr:            "localhost:8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server serves a ledger store.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	store      store.Store
	config     Config
}

// New creates a server reading and writing st.
func New(config Config, st store.Store) *Server {
	s := &Server{
		router: mux.NewRouter(),
		store:  st,
		config: config,
	}
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         config.Addr,
		Handler:      s.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/entries", s.handleListEntries).Methods("GET")
	api.HandleFunc("/entries", s.handleUpsertEntry).Methods("POST")
	api.HandleFunc("/entries/{date}/{investment}", s.handleDeleteEntry).Methods("DELETE")

	api.HandleFunc("/snapshots", s.handleListSnapshots).Methods("GET")
	api.HandleFunc("/snapshots/{date}", s.handleGetSnapshot).Methods("GET")
	api.HandleFunc("/insight", s.handleInsight).Methods("GET")
	api.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	api.HandleFunc("/series", s.handleSeries).Methods("GET")
	api.HandleFunc("/chart", s.handleChart).Methods("GET")
	api.HandleFunc("/projection", s.handleProjection).Methods("GET")
	api.HandleFunc("/rates", s.handleRates).Methods("GET")
	api.HandleFunc("/report", s.handleReport).Methods("GET")
}

// ServeHTTP makes the server usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("Starting server on http://%s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}
	return s.httpServer.Shutdown(ctx)
}
