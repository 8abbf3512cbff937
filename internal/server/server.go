// Package server exposes the theme controller over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Dhanuzh/dbexplorer/internal/config"
	"github.com/Dhanuzh/dbexplorer/internal/render"
	"github.com/Dhanuzh/dbexplorer/internal/theme"
	"github.com/Dhanuzh/dbexplorer/internal/themectl"
)

const defaultHeartbeat = 30 * time.Second

// Server is the HTTP API server
type Server struct {
	config    *config.Config
	ctl       *themectl.Controller
	logger    zerolog.Logger
	version   string
	heartbeat time.Duration

	mux    *http.ServeMux
	server *http.Server

	sseClients map[string]time.Time
	sseMu      sync.RWMutex
}

// Option configures the Server.
type Option func(*Server)

// WithVersion sets the version reported by /health.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHeartbeat sets the interval of SSE keep-alive comments.
func WithHeartbeat(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.heartbeat = d
		}
	}
}

// New creates a new API server
func New(cfg *config.Config, ctl *themectl.Controller, opts ...Option) *Server {
	s := &Server{
		config:     cfg,
		ctl:        ctl,
		logger:     zerolog.Nop(),
		version:    "dev",
		heartbeat:  defaultHeartbeat,
		mux:        http.NewServeMux(),
		sseClients: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// Handler returns the routed handler wrapped in the CORS and consumer
// middleware.
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(s.consumerMiddleware(s.mux))
}

// Start starts the HTTP server and blocks until it stops. A clean Stop
// returns nil.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().Str("addr", "http://"+addr).Msg("theme API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	// Health
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Themes
	s.mux.HandleFunc("GET /api/themes", s.handleListThemes)
	s.mux.HandleFunc("GET /api/theme", s.handleGetTheme)
	s.mux.HandleFunc("PUT /api/theme", s.handleSetTheme)
	s.mux.HandleFunc("PUT /api/theme/mode", s.handleSetMode)
	s.mux.HandleFunc("GET /api/theme/variables", s.handleVariables)
	s.mux.HandleFunc("GET /theme.css", s.handleStylesheet)

	// SSE Events
	s.mux.HandleFunc("GET /events", s.handleSSE)
}

// CORS middleware. With no configured origins every origin is allowed.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed := s.config.Server.CORS
		origin := r.Header.Get("Origin")
		switch {
		case len(allowed) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowed, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// consumerMiddleware makes the controller available to handlers through
// themectl.FromContext.
func (s *Server) consumerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(themectl.WithConsumer(r.Context(), s.ctl)))
	})
}

// toggler is implemented by consumers that flip the mode in one step.
type toggler interface {
	ToggleMode(ctx context.Context) (theme.Mode, error)
}

// Handlers

type themeResponse struct {
	ThemeKey    string        `json:"themeKey"`
	DisplayName string        `json:"displayName"`
	Mode        theme.Mode    `json:"mode"`
	Colors      theme.Palette `json:"colors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sseMu.RLock()
	clients := len(s.sseClients)
	s.sseMu.RUnlock()

	writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"state":   s.ctl.State().String(),
		"clients": clients,
	})
}

func (s *Server) handleListThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ctl.Registry().List())
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	resp, err := s.current(r.Context())
	if err != nil {
		s.writeControllerError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ThemeKey string `json:"themeKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ThemeKey) == "" {
		writeError(w, http.StatusBadRequest, "themeKey is required")
		return
	}

	consumer, err := themectl.FromContext(r.Context())
	if err != nil {
		s.writeControllerError(w, err)
		return
	}
	if err := consumer.SetThemeKey(r.Context(), req.ThemeKey); err != nil {
		s.writeControllerError(w, err)
		return
	}
	s.handleGetTheme(w, r)
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	consumer, err := themectl.FromContext(r.Context())
	if err != nil {
		s.writeControllerError(w, err)
		return
	}
	if req.Mode == "toggle" {
		err = toggleMode(r.Context(), consumer)
	} else {
		err = consumer.SetMode(r.Context(), theme.Mode(req.Mode))
	}
	if err != nil {
		s.writeControllerError(w, err)
		return
	}
	s.handleGetTheme(w, r)
}

func (s *Server) handleVariables(w http.ResponseWriter, r *http.Request) {
	format := render.FormatJSON
	if raw := r.URL.Query().Get("format"); raw != "" {
		f, err := render.ParseFormat(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}
	s.writeDocument(w, format)
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	s.writeDocument(w, render.FormatCSS)
}

// writeDocument renders the root scope as last applied by the controller.
func (s *Server) writeDocument(w http.ResponseWriter, format render.Format) {
	snap, err := s.ctl.Snapshot()
	if err != nil {
		s.writeControllerError(w, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	if format == render.FormatCSS {
		err = render.Stylesheet(w, snap.Selection.ThemeKey, snap.Root)
	} else {
		err = render.Render(w, format, render.Document{
			Theme:     snap.Selection.ThemeKey,
			Mode:      string(snap.Selection.Mode),
			Variables: snap.Root.Properties,
		})
	}
	if err != nil {
		s.logger.Error().Err(err).Str("format", string(format)).Msg("failed to render variables")
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := s.ctl.Subscribe()
	defer cancel()

	id := uuid.New().String()
	s.sseMu.Lock()
	s.sseClients[id] = time.Now()
	s.sseMu.Unlock()
	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, id)
		s.sseMu.Unlock()
	}()

	s.logger.Debug().Str("client", id).Msg("sse client connected")

	// Send heartbeat
	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	fmt.Fprintf(w, "data: {\"type\":\"connected\",\"client\":%q}\n\n", id)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug().Str("client", id).Msg("sse client disconnected")
			return
		case ev, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Type, data)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}

func (s *Server) current(ctx context.Context) (themeResponse, error) {
	consumer, err := themectl.FromContext(ctx)
	if err != nil {
		return themeResponse{}, err
	}
	sel, err := consumer.Selection()
	if err != nil {
		return themeResponse{}, err
	}
	def := s.ctl.Registry().Resolve(sel.ThemeKey)
	return themeResponse{
		ThemeKey:    def.Key,
		DisplayName: def.DisplayName,
		Mode:        sel.Mode,
		Colors:      def.Colors,
	}, nil
}

func toggleMode(ctx context.Context, consumer themectl.Consumer) error {
	if t, ok := consumer.(toggler); ok {
		_, err := t.ToggleMode(ctx)
		return err
	}
	mode, err := consumer.Mode()
	if err != nil {
		return err
	}
	return consumer.SetMode(ctx, mode.Toggle())
}

func (s *Server) writeControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, themectl.ErrNotInitialized):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, themectl.ErrInvalidMode):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("theme request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
