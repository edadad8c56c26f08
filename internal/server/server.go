// Package server wires the Connect services into an HTTP handler.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/clubledger/internal/auth"
	"github.com/mmynk/clubledger/internal/metrics"
	"github.com/mmynk/clubledger/internal/middleware"
	"github.com/mmynk/clubledger/internal/service"
	"github.com/mmynk/clubledger/internal/storage"
	"github.com/mmynk/clubledger/pkg/api/apiconnect"
)

// Deps are the collaborators the server is built from.
type Deps struct {
	Store      storage.Store
	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// NewRouter mounts the Connect services, /metrics and /healthz.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(corsMiddleware)

	// Interceptors run in option order: metrics, auth, logging.
	metered := connect.WithInterceptors(middleware.MetricsInterceptor(deps.Metrics))
	logged := connect.WithInterceptors(middleware.LoggingInterceptor(deps.Logger))
	required := connect.WithInterceptors(middleware.RequireAuth(deps.JWTManager))
	optional := connect.WithInterceptors(middleware.OptionalAuth(deps.JWTManager))

	authn := auth.NewPasswordAuthenticator(deps.Store)

	path, handler := apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authn, deps.Store, deps.JWTManager, deps.Logger),
		metered, optional, logged,
	)
	mount(r, path, handler)

	path, handler = apiconnect.NewAttendanceServiceHandler(
		service.NewAttendanceService(deps.Store, deps.Metrics, deps.Logger),
		metered, required, logged,
	)
	mount(r, path, handler)

	path, handler = apiconnect.NewAnalyticsServiceHandler(
		service.NewAnalyticsService(deps.Store, deps.Logger),
		metered, required, logged,
	)
	mount(r, path, handler)

	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

func mount(r chi.Router, path string, handler http.Handler) {
	r.Handle(path+"*", handler)
}

// New returns an HTTP server speaking HTTP/1.1 and cleartext HTTP/2 for Connect.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
