// Package mockserver is an in-memory stand-in for the platform admin API,
// used for local development and client tests.
package mockserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/logging"
	"github.com/colonyops/adminctl/internal/core/status"
)

// Route names, usable with Fail.
const (
	RouteStatusMessages  = "status-messages"
	RouteBundles         = "bundles"
	RouteBundle          = "bundle"
	RouteBundleAction    = "bundle-action"
	RouteBundleUpload    = "bundle-upload"
	RoutePlatform        = "platform-settings"
	RoutePlatformSave    = "platform-settings-save"
	RoutePlatformForm    = "platform-settings-form"
	RouteModuleSettings  = "module-settings"
	RouteModuleSettingsF = "module-settings-form"
)

// Options configures a Server.
type Options struct {
	Port int
	// Seed fills the backend with demo bundles, settings and messages.
	Seed bool
	// Latency delays every response.
	Latency time.Duration
}

type Server struct {
	httpServer *http.Server
	listener   net.Listener
	router     *mux.Router
	state      *state
	opts       Options
	log        zerolog.Logger
}

// New creates a server. It does not listen until Start is called.
func New(opts Options) *Server {
	s := &Server{
		state: newState(),
		opts:  opts,
		log:   logging.Component("mockserver"),
	}
	if opts.Seed {
		s.state.seed()
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests, s.injectFailures)

	r.HandleFunc("/status-messages", s.handleStatusMessages).Methods(http.MethodGet).Name(RouteStatusMessages)

	r.HandleFunc("/bundles", s.handleBundles).Methods(http.MethodGet).Name(RouteBundles)
	r.HandleFunc("/bundles/upload", s.handleUpload).Methods(http.MethodPost).Name(RouteBundleUpload)
	r.HandleFunc("/bundles/{id:[0-9]+}", s.handleBundle).Methods(http.MethodGet).Name(RouteBundle)
	r.HandleFunc("/bundles/{id:[0-9]+}/{action:start|stop|restart|uninstall}", s.handleBundleAction).
		Methods(http.MethodPost).Name(RouteBundleAction)

	r.HandleFunc("/settings/platform", s.handlePlatform).Methods(http.MethodGet).Name(RoutePlatform)
	r.HandleFunc("/settings/platform", s.handlePlatformSave).Methods(http.MethodPost).Name(RoutePlatformSave)
	r.HandleFunc("/settings/platform/list", s.handlePlatformForm).Methods(http.MethodPost).Name(RoutePlatformForm)
	r.HandleFunc("/settings/{id:[0-9]+}", s.handleModuleSettings).Methods(http.MethodGet).Name(RouteModuleSettings)
	r.HandleFunc("/settings/{id:[0-9]+}", s.handleModuleForm).Methods(http.MethodPost).Name(RouteModuleSettingsF)

	return r
}

// Handler returns the API handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.opts.Port))
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	actualPort := listener.Addr().(*net.TCPAddr).Port
	s.log.Info().Int("port", actualPort).Msg("starting mock admin server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("mock server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Addr returns the listen address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down mock admin server")
	return s.httpServer.Shutdown(ctx)
}

// Fail makes every request to the named route answer with status until
// cleared with status 0.
func (s *Server) Fail(route string, status int) {
	if status == 0 {
		s.state.failures.Delete(route)
		return
	}
	s.state.failures.Set(route, status)
}

// AddBundle installs a bundle. A zero ID is assigned the next free one.
func (s *Server) AddBundle(b bundle.Bundle) bundle.Bundle {
	return s.state.addBundle(b)
}

// AddStatus publishes a status message with a fresh id.
func (s *Server) AddStatus(level status.Level, module, text string) status.Message {
	return s.state.addStatus(level, module, text)
}

// RemoveStatus withdraws a status message.
func (s *Server) RemoveStatus(id string) bool {
	return s.state.removeStatus(id)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Latency > 0 {
			select {
			case <-time.After(s.opts.Latency):
			case <-r.Context().Done():
				return
			}
		}

		ctx := logging.WithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
		s.log.Debug().Ctx(ctx).Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route := mux.CurrentRoute(r); route != nil {
			if code, ok := s.state.failures.Get(route.GetName()); ok {
				http.Error(w, "injected failure", code)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
