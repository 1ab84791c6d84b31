package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hyzhou/larkrelay/internal/config"
	"github.com/hyzhou/larkrelay/internal/event"
	"github.com/hyzhou/larkrelay/internal/log"
)

// Server is the inbound webhook HTTP server.
type Server struct {
	cfg        *config.Config
	allowList  event.AllowList
	router     *event.Router
	dispatcher Dispatcher
	logger     *slog.Logger
	server     *http.Server
}

// New creates a webhook server instance.
func New(cfg *config.Config, router *event.Router, dispatcher Dispatcher) *Server {
	return &Server{
		cfg:        cfg,
		allowList:  cfg.AllowList(),
		router:     router,
		dispatcher: dispatcher,
		logger:     log.WithComponent("webhook"),
	}
}

// Start starts the webhook HTTP server (blocking until ctx is cancelled
// or the listener fails).
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.cfg.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("webhook server starting", "listen", s.cfg.Listen, "path", WebhookPath)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook server error: %w", err)
	}
}

// Handler builds the HTTP router. Exposed for tests.
func (s *Server) Handler() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post(WebhookPath, s.handleWebhook)

	return r
}

// loggingMiddleware logs HTTP requests (excludes payload content).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("webhook request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebhook runs the verification and routing pipeline for one
// inbound event.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	deliveryID := r.Header.Get(DeliveryHeader)
	eventType := r.Header.Get(EventHeader)
	reqLogger := log.WithDelivery(deliveryID).With("event", eventType)

	// Missing required configuration is a server fault; the process
	// keeps serving so the condition can be fixed without a restart.
	if s.cfg.GitHubSecret == "" || s.cfg.LarkWebhookURL == "" {
		reqLogger.Error("webhook not configured, missing secret or webhook URL")
		s.respondError(w, http.StatusInternalServerError, "server misconfigured")
		return
	}

	limitedReader := io.LimitReader(r.Body, MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read request body")
		return
	}
	if int64(len(body)) > MaxBodySize {
		s.respondError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	// Verification runs over the raw bytes, before any decode.
	if err := verifySignature(body, r.Header.Get(SignatureHeader), s.cfg.GitHubSecret); err != nil {
		reqLogger.Warn("signature verification failed")
		s.respondError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	env, err := event.Decode(eventType, deliveryID, body)
	if err != nil {
		reqLogger.Warn("payload decode failed", "error", err)
		s.respondError(w, http.StatusBadRequest, "malformed payload")
		return
	}

	if !s.allowList.Allows(env.Repo) {
		reqLogger.Info("repository not allow-listed", "repo", env.Repo)
		s.respondJSON(w, http.StatusOK, IgnoredResponse{Status: "ignored", Reason: "repository not allowed"})
		return
	}

	job, err := s.router.Route(env)
	if err != nil {
		if errors.Is(err, event.ErrNoRoute) {
			reqLogger.Debug("event not handled", "action", env.Action)
			s.respondJSON(w, http.StatusOK, IgnoredResponse{Status: "ignored", Reason: "event not handled"})
			return
		}
		reqLogger.Error("routing failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "routing failed")
		return
	}

	// The response goes out now; rendering and delivery continue on
	// the dispatcher's workers.
	dispatchID, queued := s.dispatcher.Submit(job)
	if !queued {
		// Accepted but lost to backpressure. Delivery is best-effort,
		// so the caller still gets 202, without a dispatch id that
		// would suggest a job in flight.
		reqLogger.Warn("notification dropped before dispatch",
			"action", env.Action,
			"repo", env.Repo,
			"dispatch_id", dispatchID,
		)
		s.respondJSON(w, http.StatusAccepted, AcceptedResponse{Status: "accepted"})
		return
	}

	reqLogger.Info("event accepted",
		"action", env.Action,
		"repo", env.Repo,
		"dispatch_id", dispatchID,
	)
	s.respondJSON(w, http.StatusAccepted, AcceptedResponse{Status: "accepted", DispatchID: dispatchID})
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
