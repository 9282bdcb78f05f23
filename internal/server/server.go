// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package server exposes the admin and quiz services over HTTP with a JSON
// envelope and an encrypted session cookie.
package server // import "github.com/toeirei/quizmaster/internal/server"

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/toeirei/quizmaster/internal/admin"
	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/internal/quiz"
	"github.com/toeirei/quizmaster/internal/session"
)

const defaultShutdownTimeout = 10 * time.Second

// Config wires dependencies for the HTTP server.
type Config struct {
	Addr         string
	Admins       *admin.Service
	Quiz         *quiz.Service
	Codec        *session.Codec
	CookieName   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// InsecureCookie drops the Secure attribute for plain-HTTP development.
	InsecureCookie  bool
	ShutdownTimeout time.Duration
}

// Server hosts the HTTP API.
type Server struct {
	cfg        Config
	gate       session.Gate
	httpServer *http.Server
}

// New validates cfg and builds a Server.
func New(cfg Config) (*Server, error) {
	if cfg.Admins == nil || cfg.Quiz == nil {
		return nil, errors.New("server requires admin and quiz services")
	}
	if cfg.Codec == nil {
		return nil, errors.New("server requires a session codec")
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "quizmaster_session"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	s := &Server{cfg: cfg, gate: session.NewGate(cfg.Admins)}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in session and logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin.login", s.handleLogin)
	mux.HandleFunc("GET /admin.current", s.handleCurrent)
	mux.HandleFunc("POST /quiz.add_theme", s.requireAdmin(s.handleAddTheme))
	mux.HandleFunc("GET /quiz.list_themes", s.requireAdmin(s.handleListThemes))
	mux.HandleFunc("POST /quiz.add_question", s.requireAdmin(s.handleAddQuestion))
	mux.HandleFunc("GET /quiz.list_questions", s.requireAdmin(s.handleListQuestions))
	return logRequests(s.withSession(mux))
}

// ListenAndServe runs the HTTP server until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serveErr := make(chan error, 1)
	logging.Infof("server: listening on %s", s.cfg.Addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
