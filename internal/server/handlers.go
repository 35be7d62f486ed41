package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-formdesigner"
	"github.com/goliatone/go-formdesigner/internal/auth"
	"github.com/goliatone/go-formdesigner/internal/logging"
	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/dnd"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/render"
)

const maxBodyBytes = 1 << 20

var exportFormats = map[string]bool{"json": true, "yaml": true, "openapi": true}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	auth.State
	Token     string `json:"token,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

type mutationResponse struct {
	Changed  bool                  `json:"changed"`
	Document document.FormDocument `json:"document"`
}

type paletteResponse struct {
	Items []catalog.Item `json:"items"`
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, user string, ws *workspace)

func (s *Server) requireSession(next sessionHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.gate.Verify(sessionToken(r))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ws, err := s.workspaceFor(session.User)
		if err != nil {
			s.logger.Error("workspace unavailable", logging.String("user", session.User), logging.Error(err))
			writeError(w, http.StatusInternalServerError, "workspace unavailable")
			return
		}
		next(w, r, session.User, ws)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := s.gate.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		s.logger.Error("login failed", logging.Error(err))
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Info("session started", logging.String("user", session.User))
	writeJSON(w, http.StatusOK, sessionResponse{
		State:     session.State(),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.gate.Logout(sessionToken(r))
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{State: s.gate.StateOf(sessionToken(r))})
}

func (s *Server) handlePalette(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, paletteResponse{Items: s.palette.Items()})
}

func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request, _ string, ws *workspace) {
	ws.mu.Lock()
	doc := ws.ws.Store().Snapshot()
	ws.mu.Unlock()
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request, user string, ws *workspace) {
	var action document.Action
	if err := decodeJSON(w, r, &action); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws.mu.Lock()
	changed, err := ws.ws.Dispatch(action)
	doc := ws.ws.Store().Snapshot()
	ws.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("action applied",
		logging.String("user", user),
		logging.String("type", string(action.Type)),
		logging.Bool("changed", changed),
	)
	writeJSON(w, http.StatusOK, mutationResponse{Changed: changed, Document: doc})
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request, user string, ws *workspace) {
	var event dnd.DragEnd
	if err := decodeJSON(w, r, &event); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws.mu.Lock()
	changed, err := ws.ws.Drop(event)
	doc := ws.ws.Store().Snapshot()
	ws.mu.Unlock()

	if err != nil {
		if errors.Is(err, dnd.ErrUnknownKind) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("drop resolved",
		logging.String("user", user),
		logging.String("active", event.Active),
		logging.String("over", event.Over),
		logging.Bool("changed", changed),
	)
	writeJSON(w, http.StatusOK, mutationResponse{Changed: changed, Document: doc})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, _ string, ws *workspace) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "json"
	}
	if !exportFormats[format] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}

	ws.mu.Lock()
	out, contentType, err := ws.ws.Render(r.Context(), format, formdesigner.RenderOptions{})
	ws.mu.Unlock()

	if err != nil {
		s.logger.Error("export failed", logging.String("format", format), logging.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handlePreview renders the workspace as HTML. GET follows the document's
// preview flag unless ?mode= overrides it; POST treats the body as a filled
// preview form, validates it and renders the values back with errors.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request, _ string, ws *workspace) {
	opts := formdesigner.RenderOptions{Theme: s.theme, Variant: s.variant}
	if mode := r.URL.Query().Get("mode"); mode != "" {
		opts.Mode = render.ParseMode(mode)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	status := http.StatusOK
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form payload")
			return
		}
		schema := ws.ws.Schema()
		opts.Mode = render.ModePreview
		opts.Values = submittedValues(schema, r)
		opts.Errors = render.ValidateValues(schema, opts.Values)
		if len(opts.Errors) > 0 {
			status = http.StatusUnprocessableEntity
		}
	}

	out, contentType, err := ws.ws.Render(r.Context(), "vanilla", opts)
	if err != nil {
		s.logger.Error("preview failed", logging.Error(err))
		writeError(w, http.StatusInternalServerError, "preview failed")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// submittedValues reads posted controls keyed by field id. Checkbox groups
// keep every checked option; other kinds take the first value.
func submittedValues(schema projection.Schema, r *http.Request) map[string]any {
	values := make(map[string]any)
	for _, section := range schema.Sections {
		for _, field := range section.Fields {
			posted, ok := r.PostForm[field.ID]
			if !ok {
				continue
			}
			if field.Type == catalog.KindCheckbox {
				values[field.ID] = append([]string(nil), posted...)
				continue
			}
			if len(posted) > 0 {
				values[field.ID] = posted[0]
			}
		}
	}
	return values
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("invalid json payload: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
