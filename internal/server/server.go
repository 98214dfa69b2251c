package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scrapworks/reclaimer/internal/aggregate"
	"github.com/scrapworks/reclaimer/internal/bookmark"
	"github.com/scrapworks/reclaimer/internal/database"
	"github.com/scrapworks/reclaimer/internal/handler"
	"github.com/scrapworks/reclaimer/internal/logger"
	"github.com/scrapworks/reclaimer/internal/metrics"
	"github.com/scrapworks/reclaimer/internal/repository"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	aggregateService aggregate.Service
	bookmarkService  bookmark.Service
	catalog          repository.Catalog
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, aggregateService aggregate.Service, bookmarkService bookmark.Service, catalog repository.Catalog) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Stateless aggregation over a caller-supplied bookmark set
		r.Post("/aggregate", handler.HandleAggregate(aggregateService))

		// Aggregation over a user's persisted bookmarks and settings
		r.Get("/aggregate/user", handler.HandleUserAggregate(bookmarkService, aggregateService))

		// Catalog item lookup
		r.Get("/item/{itemID}", handler.HandleGetItem(catalog))

		// Bookmark routes
		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", handler.HandleListBookmarks(bookmarkService))
			r.Post("/add", handler.HandleAddBookmark(bookmarkService))
			r.Post("/remove", handler.HandleRemoveBookmark(bookmarkService))
			r.Post("/pause", handler.HandlePauseBookmark(bookmarkService))
			r.Post("/resume", handler.HandleResumeBookmark(bookmarkService))
		})

		// Hidden source routes
		r.Route("/sources", func(r chi.Router) {
			r.Get("/hidden", handler.HandleListHiddenSources(bookmarkService))
			r.Post("/hide", handler.HandleHideSource(bookmarkService))
			r.Post("/unhide", handler.HandleUnhideSource(bookmarkService))
		})

		// Planner settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", handler.HandleGetSettings(bookmarkService))
			r.Post("/", handler.HandleUpdateSettings(bookmarkService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		aggregateService: aggregateService,
		bookmarkService:  bookmarkService,
		catalog:          catalog,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probe and scrape endpoints would drown the logs
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Credentials never reach the logs
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
