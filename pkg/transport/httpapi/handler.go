package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/session"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// CookieName holds the session id between requests.
const CookieName = "formwizard_session"

const (
	opField       = "op"
	maxFormMemory = 1 << 20
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger routes request logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithBasePath mounts the wizard under path instead of "/wizard".
func WithBasePath(path string) Option {
	return func(h *Handler) {
		path = "/" + strings.Trim(strings.TrimSpace(path), "/")
		if path != "/" {
			h.base = path
		}
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(h *Handler) {
		h.secure = secure
	}
}

// Handler serves the wizard.
type Handler struct {
	sessions *session.Store
	renderer *vanilla.Renderer
	logger   *zap.Logger
	base     string
	secure   bool
	mux      *http.ServeMux
}

// Response is the JSON body returned for POST requests. Form and Messages
// hold the HTML that replaces the form and messages wrappers; an empty
// Messages clears the region.
type Response struct {
	Form      string `json:"form"`
	Messages  string `json:"messages"`
	Completed bool   `json:"completed"`
	Step      int    `json:"step"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the handler and its routes.
func New(sessions *session.Store, renderer *vanilla.Renderer, options ...Option) *Handler {
	h := &Handler{
		sessions: sessions,
		renderer: renderer,
		logger:   zap.NewNop(),
		base:     "/wizard",
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+h.base, h.handleStart)
	mux.HandleFunc("POST "+h.base+"/{id}", h.handleAction)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	h.mux = mux
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// handleStart resumes the session named by the cookie, or opens a new one,
// and renders the full page.
func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var current *session.Session
	if cookie, err := r.Cookie(CookieName); err == nil {
		current, _ = h.sessions.Get(cookie.Value)
	}
	if current == nil {
		current = h.sessions.Create()
		h.logger.Debug("httpapi: session opened", zap.String("session", current.ID()))
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    current.ID(),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	desc, err := current.View()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writePage(w, r, http.StatusOK, current, desc)
}

func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	current, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}
	intent, err := wizard.ParseIntent(r.PostForm.Get(opField))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	values := make(wizard.Values, len(r.PostForm))
	for key := range r.PostForm {
		if key == opField {
			continue
		}
		values[key] = r.PostForm.Get(key)
	}

	status := http.StatusOK
	desc, err := current.Handle(r.Context(), intent, values)
	if err != nil {
		if !wizard.IsProtocolError(err) {
			h.fail(w, r, err)
			return
		}
		h.logger.Warn("httpapi: unavailable action",
			zap.String("session", current.ID()),
			zap.Error(err))
		status = http.StatusConflict
	}

	if !wantsJSON(r) {
		h.writePage(w, r, status, current, desc)
		return
	}

	form, err := h.renderer.RenderForm(r.Context(), desc, h.pageOptions(current))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	messages, err := h.renderer.RenderMessages(r.Context(), desc)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, status, Response{
		Form:      string(form),
		Messages:  string(messages),
		Completed: desc.Completed,
		Step:      desc.Step,
	})
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, current *session.Session, desc view.Description) {
	page, err := h.renderer.RenderPage(r.Context(), desc, h.pageOptions(current))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(page)
}

func (h *Handler) pageOptions(current *session.Session) vanilla.PageOptions {
	return vanilla.PageOptions{Action: h.base + "/" + current.ID()}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("httpapi: request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
