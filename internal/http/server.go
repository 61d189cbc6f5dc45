// Package http exposes the analytics API over JSON. Handlers validate the
// query parameters, grab the current dataset snapshot and delegate to the
// report builders; successful GET responses are cached until the next reload.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"pharmakpi/internal/cache"
	"pharmakpi/internal/config"
	"pharmakpi/internal/dataset"
	"pharmakpi/internal/log"
)

type Server struct {
	http.Server
	store  *dataset.Store
	logger *log.Logger

	rateLimiter *rateLimiter

	// Cached GET responses, keyed by request URI. Purged on reload so a
	// stale snapshot is never served past the swap.
	responseCache *cache.LRUCache[cachedResponse]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

type cachedResponse struct {
	status int
	body   []byte
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg *config.Config, store *dataset.Store, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    cfg.Addr(),
			Handler: mux,
		},
		store:         store,
		logger:        logger.WithComponent(log.ComponentHTTP),
		rateLimiter:   newRateLimiter(),
		responseCache: cache.NewLRUCache[cachedResponse](cfg.CacheMaxEntries, cfg.CacheTTL),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.responseCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/health", s.observed(s.handleHealth))
	mux.HandleFunc("/meta/years", s.observed(s.cached(s.handleMetaYears)))
	mux.HandleFunc("/meta/categories", s.observed(s.cached(s.handleMetaCategories)))
	mux.HandleFunc("/kpis/yearly", s.observed(s.cached(s.handleYearlyKPIs)))
	mux.HandleFunc("/timeseries/revenue", s.observed(s.cached(s.handleRevenueSeries)))
	mux.HandleFunc("/timeseries/product", s.observed(s.cached(s.handleProductSeries)))
	mux.HandleFunc("/compare/yearly", s.observed(s.cached(s.handleCompareYearly)))
	mux.HandleFunc("/analysis/category-contribution", s.observed(s.cached(s.handleCategoryContribution)))
	mux.HandleFunc("/analysis/price-volume", s.observed(s.cached(s.handlePriceVolume)))
	mux.HandleFunc("/analysis/diagnostic", s.observed(s.cached(s.handleDiagnostic)))
	mux.HandleFunc("/analysis/top-products", s.observed(s.cached(s.handleTopProducts)))
	mux.HandleFunc("/analysis/product", s.observed(s.cached(s.handleProductAnalysis)))
	mux.HandleFunc("/analysis/month-detail", s.observed(s.cached(s.handleMonthDetail)))
	mux.HandleFunc("/admin/reload", s.observed(s.handleReload))

	return s
}

// observed adds request tracing, security and CORS headers, rate limiting on
// mutating requests, and start/completion logging.
func (s *Server) observed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		reqLogger := s.logger.With(log.FieldRequestID, requestID)
		ctx := log.IntoContext(r.Context(), reqLogger)
		r = r.WithContext(ctx)

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		reqLogger.InfoContext(ctx, "Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// cached serves GET requests from the response cache when possible and
// stores successful responses on miss.
func (s *Server) cached(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next(w, r)
			return
		}

		key := r.URL.RequestURI()
		if resp, ok := s.responseCache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(resp.status)
			_, _ = w.Write(resp.body)
			return
		}

		rec := &recordingWriter{responseWriter: responseWriter{ResponseWriter: w, statusCode: http.StatusOK}}
		next(rec, r)

		if rec.statusCode == http.StatusOK {
			s.responseCache.Set(key, cachedResponse{status: rec.statusCode, body: rec.body})
		}
	}
}

// responseWriter captures the status code for logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// recordingWriter additionally buffers the body for caching.
type recordingWriter struct {
	responseWriter
	body []byte
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body = append(rw.body, b...)
	return rw.responseWriter.ResponseWriter.Write(b)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// Shutdown stops the background routines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
