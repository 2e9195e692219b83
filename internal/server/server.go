package server

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/zombor/imgtext/internal/session"
)

// DefaultMaxUploadSize bounds uploaded images; phone photos can be large
const DefaultMaxUploadSize = int64(50 << 20)

// Server handles HTTP requests from the page
type Server struct {
	manager       *session.Manager
	basicAuth     BasicAuth
	maxUploadSize int64
	mux           *http.ServeMux

	mu         sync.Mutex
	httpServer *http.Server
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a new Server with default mux
func NewServer(manager *session.Manager, basicAuth BasicAuth, maxUploadSize int64) *Server {
	return NewServerWithMux(manager, basicAuth, maxUploadSize, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(manager *session.Manager, basicAuth BasicAuth, maxUploadSize int64, mux *http.ServeMux) *Server {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	s := &Server{
		manager:       manager,
		basicAuth:     basicAuth,
		maxUploadSize: maxUploadSize,
		mux:           mux,
	}
	s.registerRoutes()
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(credentials[0]), []byte(s.basicAuth.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(credentials[1]), []byte(s.basicAuth.Password)) == 1
	return userOK && passOK
}

// sameOrigin rejects requests made by pages served from another origin.
// The page is served by this server, so its own requests always match;
// requests without an Origin header (navigation, curl) pass.
func (s *Server) sameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		crossSite := r.Header.Get("Sec-Fetch-Site") == "cross-site"
		if crossSite || (origin != "" && !sameHost(origin, r.Host)) {
			slog.Warn("Rejected cross-origin request", "origin", origin, "method", r.Method, "path", r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sameHost reports whether origin names host. An opaque "null" origin never does.
func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, host)
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Image to Text"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// registerRoutes registers all routes on the server's mux
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /static/app.css", s.requireAuth(s.handleStaticCSS))
	s.mux.HandleFunc("GET /static/app.js", s.requireAuth(s.handleStaticJS))

	s.mux.HandleFunc("POST /api/sessions", s.requireAuth(s.handleCreateSession))
	s.mux.HandleFunc("GET /api/sessions/{id}", s.requireAuth(s.handleGetSession))
	s.mux.HandleFunc("POST /api/sessions/{id}/convert", s.requireAuth(s.handleConvert))
	s.mux.HandleFunc("POST /api/sessions/{id}/dragover", s.requireAuth(s.handleDragOver))
	s.mux.HandleFunc("POST /api/sessions/{id}/drop", s.requireAuth(s.handleDrop))
	s.mux.HandleFunc("POST /api/sessions/{id}/paste", s.requireAuth(s.handlePaste))
	s.mux.HandleFunc("POST /api/sessions/{id}/copy", s.requireAuth(s.handleCopy))

	// Static HTML interface (register last as it's the catch-all)
	s.mux.HandleFunc("GET /index.html", s.requireAuth(s.handleIndex))
	s.mux.HandleFunc("GET /{$}", s.requireAuth(s.handleIndex))
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.sameOrigin(s.mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server, waiting for running requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.sameOrigin(s.mux).ServeHTTP(w, r)
}
