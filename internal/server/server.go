// Package server is the Serene HTTP backend: auth, chat, history, and the
// wellness features (journal, mood, meditation, community, daily challenge).
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/MBhoomika/serene-ai/internal/models"
	"github.com/MBhoomika/serene-ai/internal/responder"
	"github.com/MBhoomika/serene-ai/internal/store"
)

// Server hosts the Serene API.
type Server struct {
	cfg       Config
	db        *store.Database
	responder *responder.Responder
	logger    *zap.SugaredLogger
	router    chi.Router
	cron      *cron.Cron

	mu        sync.RWMutex
	challenge models.Challenge
}

// New creates a Server with its database, responder, routes, and scheduled
// jobs wired up.
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	db, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	sugar := logger.Sugar()

	respOpts := []responder.Option{}
	if cfg.OpenAIAPIKey != "" {
		respOpts = append(respOpts,
			responder.WithLLM(responder.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)))
		sugar.Infow("llm responder enabled", "model", cfg.OpenAIModel)
	} else {
		sugar.Info("no OPENAI_API_KEY set, using built-in responses")
	}

	s := &Server{
		cfg:       cfg,
		db:        db,
		responder: responder.New(sugar, respOpts...),
		logger:    sugar,
		cron:      cron.New(),
		challenge: responder.DailyChallenge(time.Now()),
	}
	s.routes()

	// Refresh the cached daily challenge at midnight.
	if _, err := s.cron.AddFunc("0 0 * * *", s.refreshChallenge); err != nil {
		db.Close()
		return nil, err
	}
	// Sweep expired sessions hourly.
	if _, err := s.cron.AddFunc("@hourly", s.pruneSessions); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.cron.Start()
	defer s.cron.Stop()
	defer s.db.Close()

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("serene server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get(models.EndpointHealth, s.handleHealth)
	r.Post(models.EndpointRegister, s.handleRegister)
	r.Post(models.EndpointLogin, s.handleLogin)
	r.Get(models.EndpointQuote, s.handleQuote)
	r.Get(models.EndpointChallenge, s.handleChallenge)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post(models.EndpointLogout, s.handleLogout)
		r.Post(models.EndpointChat, s.handleChat)
		r.Post(models.EndpointSaveChat, s.handleSaveChat)
		r.Get(models.EndpointChatHistory, s.handleChatHistory)
		r.Post(models.EndpointSearchChat, s.handleSearchChat)
		r.Post(models.EndpointSaveJournal, s.handleSaveJournal)
		r.Get(models.EndpointJournal, s.handleJournal)
		r.Post(models.EndpointSaveMood, s.handleSaveMood)
		r.Post(models.EndpointLogMeditation, s.handleLogMeditation)
		r.Post(models.EndpointStartActivity, s.handleStartActivity)

		r.Get(models.EndpointPosts, s.handleListPosts)
		r.Post(models.EndpointPosts, s.handleCreatePost)
		r.Post(models.EndpointPosts+"/{id}/like", s.handleLikePost)
		r.Get(models.EndpointPosts+"/{id}/comments", s.handleListComments)
		r.Post(models.EndpointPosts+"/{id}/comments", s.handleAddComment)
	})

	s.router = r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) refreshChallenge() {
	challenge := responder.DailyChallenge(time.Now())
	s.mu.Lock()
	s.challenge = challenge
	s.mu.Unlock()
	s.logger.Infow("daily challenge refreshed", "title", challenge.Title)
}

func (s *Server) pruneSessions() {
	if err := s.db.PruneSessions(time.Now()); err != nil {
		s.logger.Warnw("failed to prune sessions", "error", err)
	}
}
