// Package server exposes the HTTP API: story listings, feedback intake
// (including one-click signed links) and the manual scan trigger.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"storyscout/pkg/domain"
	"storyscout/pkg/scheduler"
	"storyscout/pkg/scoring"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/stories.go -pkg mocks -skip-ensure -fmt goimports . Stories
//go:generate moq -out mocks/topics.go -pkg mocks -skip-ensure -fmt goimports . Topics
//go:generate moq -out mocks/feedback.go -pkg mocks -skip-ensure -fmt goimports . Feedback
//go:generate moq -out mocks/trigger.go -pkg mocks -skip-ensure -fmt goimports . Trigger
//go:generate moq -out mocks/verifier.go -pkg mocks -skip-ensure -fmt goimports . Verifier

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	stories  Stories
	topics   Topics
	feedback Feedback
	trigger  Trigger
	verifier Verifier
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Stories reads persisted stories
type Stories interface {
	GetStory(ctx context.Context, id string) (*domain.Story, error)
	GetTopStories(ctx context.Context, limit int) ([]domain.Story, error)
}

// Topics reads the accumulated topic aggregates
type Topics interface {
	GetTopics(ctx context.Context) ([]domain.Topic, error)
}

// Feedback records user feedback and returns the recomputed score
type Feedback interface {
	RecordFeedback(ctx context.Context, req scoring.FeedbackRequest) (*scoring.Computation, error)
}

// Trigger starts a discovery pass on demand
type Trigger interface {
	RunNow(ctx context.Context) error
}

// Verifier checks one-click feedback tokens
type Verifier interface {
	Verify(token string) (storyID, action string, err error)
}

// New initializes a new server instance
func New(cfg ConfigProvider, stories Stories, topics Topics, feedback Feedback, trigger Trigger, verifier Verifier, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		stories:  stories,
		topics:   topics,
		feedback: feedback,
		trigger:  trigger,
		verifier: verifier,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("storyscout", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /stories", s.storiesHandler)
		r.HandleFunc("GET /stories/{id}", s.storyHandler)
		r.HandleFunc("GET /topics", s.topicsHandler)
		r.HandleFunc("POST /feedback", s.feedbackHandler)
		r.HandleFunc("POST /scan", s.scanHandler)
	})

	// one-click feedback from notification messages
	s.router.HandleFunc("GET /feedback/{token}", s.feedbackLinkHandler)
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// storiesHandler returns the top-ranked stories
func (s *Server) storiesHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &limit); err != nil || limit <= 0 || limit > 100 {
			RenderError(w, r, fmt.Errorf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
	}

	stories, err := s.stories.GetTopStories(r.Context(), limit)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, stories)
}

// storyHandler returns a single story by id
func (s *Server) storyHandler(w http.ResponseWriter, r *http.Request) {
	story, err := s.stories.GetStory(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderError(w, r, err, http.StatusNotFound)
		return
	}
	RenderJSON(w, r, http.StatusOK, story)
}

// topicsHandler returns all topic aggregates
func (s *Server) topicsHandler(w http.ResponseWriter, r *http.Request) {
	topics, err := s.topics.GetTopics(r.Context())
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, topics)
}

// feedbackRequest is the JSON payload for POST /api/v1/feedback
type feedbackRequest struct {
	StoryID    string `json:"story_id"`
	Action     string `json:"action"`
	Confidence string `json:"confidence,omitempty"`
	Source     string `json:"source,omitempty"`
	Metadata   string `json:"metadata,omitempty"`
}

// feedbackHandler records a feedback event and returns the recomputed score
func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	action := domain.FeedbackAction(req.Action)
	if !action.Valid() {
		RenderError(w, r, fmt.Errorf("unknown action %q", req.Action), http.StatusBadRequest)
		return
	}
	confidence := domain.FeedbackConfidence(req.Confidence)
	if req.Confidence == "" {
		confidence = action.DefaultConfidence()
	}
	if !confidence.Valid() {
		RenderError(w, r, fmt.Errorf("unknown confidence %q", req.Confidence), http.StatusBadRequest)
		return
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	comp, err := s.feedback.RecordFeedback(r.Context(), scoring.FeedbackRequest{
		StoryID:    req.StoryID,
		Action:     action,
		Confidence: confidence,
		Source:     source,
		Metadata:   req.Metadata,
	})
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"story_id":         req.StoryID,
		"relevance_score":  comp.RelevanceScore,
		"suppressed_until": comp.SuppressedUntil,
	})
}

// feedbackLinkHandler records feedback from a signed one-click link
func (s *Server) feedbackLinkHandler(w http.ResponseWriter, r *http.Request) {
	if s.verifier == nil {
		RenderError(w, r, fmt.Errorf("feedback links not configured"), http.StatusNotFound)
		return
	}

	storyID, action, err := s.verifier.Verify(r.PathValue("token"))
	if err != nil {
		RenderError(w, r, err, http.StatusForbidden)
		return
	}

	fbAction := domain.FeedbackAction(action)
	if !fbAction.Valid() {
		RenderError(w, r, fmt.Errorf("unknown action %q", action), http.StatusBadRequest)
		return
	}

	_, err = s.feedback.RecordFeedback(r.Context(), scoring.FeedbackRequest{
		StoryID:    storyID,
		Action:     fbAction,
		Confidence: fbAction.DefaultConfidence(),
		Source:     "link",
	})
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "feedback %s recorded, thanks!\n", action)
}

// scanHandler triggers a discovery pass; a pass already in flight is a conflict
func (s *Server) scanHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.trigger.RunNow(r.Context()); err != nil {
		if errors.Is(err, scheduler.ErrAlreadyRunning) {
			RenderError(w, r, err, http.StatusConflict)
			return
		}
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, map[string]string{"status": "completed"})
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
