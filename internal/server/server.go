// Package server exposes a workspace per signed-in user over HTTP for a
// browser presentation layer.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-formdesigner"
	"github.com/goliatone/go-formdesigner/internal/auth"
	"github.com/goliatone/go-formdesigner/internal/logging"
	"github.com/goliatone/go-formdesigner/pkg/catalog"
)

// SessionCookie carries the session token for browser clients. API clients
// may send it as a bearer token instead.
const SessionCookie = "formdesigner_session"

// WorkspaceFactory builds an empty workspace for a user signing in for the
// first time.
type WorkspaceFactory func() (*formdesigner.Workspace, error)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkspaceFactory replaces the default workspace constructor.
func WithWorkspaceFactory(factory WorkspaceFactory) Option {
	return func(s *Server) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// WithPalette sets the palette served by GET /api/palette.
func WithPalette(palette *catalog.Palette) Option {
	return func(s *Server) {
		if palette != nil {
			s.palette = palette
		}
	}
}

// WithTheme picks the go-theme manifest used for /preview.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.theme = name
		s.variant = variant
	}
}

// WithSecureCookies marks the session cookie Secure.
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.secureCookies = secure
	}
}

// Server routes HTTP requests to per-user workspaces.
type Server struct {
	gate          *auth.Gate
	logger        *logging.Logger
	factory       WorkspaceFactory
	palette       *catalog.Palette
	theme         string
	variant       string
	secureCookies bool
	now           func() time.Time

	mu         sync.Mutex
	workspaces map[string]*workspace
}

// workspace confines all store access for one user to a single goroutine at
// a time.
type workspace struct {
	mu sync.Mutex
	ws *formdesigner.Workspace
}

// New builds a server around the auth gate.
func New(gate *auth.Gate, options ...Option) (*Server, error) {
	if gate == nil {
		return nil, errors.New("server: auth gate is required")
	}
	s := &Server{
		gate:   gate,
		logger: logging.NewNopLogger(),
		factory: func() (*formdesigner.Workspace, error) {
			return formdesigner.NewWorkspace()
		},
		now:        time.Now,
		workspaces: make(map[string]*workspace),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.palette == nil {
		s.palette = catalog.DefaultPalette()
	}
	return s, nil
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/session", s.handleLogin)
	mux.HandleFunc("DELETE /api/session", s.handleLogout)
	mux.HandleFunc("GET /api/session", s.handleSession)
	mux.HandleFunc("GET /api/palette", s.handlePalette)

	mux.Handle("GET /api/document", s.requireSession(s.handleDocument))
	mux.Handle("POST /api/actions", s.requireSession(s.handleAction))
	mux.Handle("POST /api/drop", s.requireSession(s.handleDrop))
	mux.Handle("GET /api/export", s.requireSession(s.handleExport))
	mux.Handle("GET /preview", s.requireSession(s.handlePreview))
	mux.Handle("POST /preview", s.requireSession(s.handlePreview))

	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(formdesigner.EmbeddedAssets())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return s.logRequests(mux)
}

// workspaceFor returns the user's workspace, creating it on first use.
func (s *Server) workspaceFor(user string) (*workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.workspaces[user]; ok {
		return ws, nil
	}
	built, err := s.factory()
	if err != nil {
		return nil, fmt.Errorf("server: build workspace: %w", err)
	}
	ws := &workspace{ws: built}
	s.workspaces[user] = ws
	return ws, nil
}

func sessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
