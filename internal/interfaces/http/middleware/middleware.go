// Package middleware provides HTTP middleware for Chi router.
// Middleware components handle cross-cutting concerns like logging,
// rate limiting, metrics and request tracing.
package middleware

import (
	"context"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hapkiduki/dimweight/internal/application/port"
	"github.com/hapkiduki/dimweight/pkg/logger"
	"golang.org/x/time/rate"
)

// RequestIDHeader is the header name for request IDs.
const RequestIDHeader = "X-Request-ID"

// HTTP metric names.
const (
	MetricHTTPRequests        = "http_requests_total"
	MetricHTTPRequestDuration = "http_request_duration_seconds"
)

// RequestID generates a unique request ID for each request.
// The ID is added to the response headers and request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if request already has an ID (e.g., from a gateway)
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := logger.ContextWithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger returns a middleware that logs HTTP request.
// It logs request method, path, status, latency, and client IP.
//
// Parameters:
//   - log: The logger to use
//
// Returns:
//   - func(http.Handler) http.Handler: the middleware function
func Logger(log port.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			log.WithContext(r.Context()).Info("HTTP Request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", ww.statusCode,
				"latency_ms", time.Since(start).Milliseconds(),
				"client_ip", ClientIP(r),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// Metrics returns a middleware that records request counts and latencies
// labelled by route pattern, so path parameters do not explode cardinality.
func Metrics(metrics port.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			metrics.Counter(MetricHTTPRequests, 1, map[string]string{
				"method": r.Method,
				"route":  route,
				"status": strconv.Itoa(ww.statusCode),
			})
			metrics.Timing(MetricHTTPRequestDuration, time.Since(start), map[string]string{
				"method": r.Method,
				"route":  route,
			})
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// Write implements http.ResponseWriter.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	return rw.ResponseWriter.Write(b)
}

// Recoverer returns a middleware that recovers from panics.
// It logs the panic and returns a 500 Internal Server Error response.
func Recoverer(log port.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					log.WithContext(r.Context()).Error("Panic recovered",
						"error", err,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiterConfig contains rate limiter configuration.
type RateLimiterConfig struct {
	// RequestsPerSecond is the sustained rate allowed per client.
	RequestsPerSecond float64

	// Burst is the number of requests a client may send at once.
	Burst int

	// IdleTTL is how long an idle client's bucket is kept.
	IdleTTL time.Duration

	// KeyFunc identifies the client (e.g., by IP).
	KeyFunc func(*http.Request) string
}

// DefaultRateLimiterConfig returns the default rate limiter configuration.
// The burst absorbs a live preview fired on every keystroke.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		Burst:             30,
		IdleTTL:           10 * time.Minute,
		KeyFunc:           ClientIP,
	}
}

// clientBucket is one client's token bucket.
type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter returns a middleware that limits request rate per client.
// Buckets of clients idle for longer than IdleTTL are dropped.
//
// Parameters:
//   - config: Rate limiter configuration
//
// Returns:
//   - func(http.Handler) http.Handler: the middleware function
func RateLimiter(config RateLimiterConfig) func(http.Handler) http.Handler {
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIP
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = DefaultRateLimiterConfig().IdleTTL
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*clientBucket)
		lastSweep = time.Now()
	)

	allow := func(key string) bool {
		now := time.Now()

		mu.Lock()
		defer mu.Unlock()

		if now.Sub(lastSweep) > config.IdleTTL {
			for k, b := range buckets {
				if now.Sub(b.lastSeen) > config.IdleTTL {
					delete(buckets, k)
				}
			}
			lastSweep = now
		}

		b, ok := buckets[key]
		if !ok {
			b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst)}
			buckets[key] = b
		}
		b.lastSeen = now
		return b.limiter.AllowN(now, 1)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allow(config.KeyFunc(r)) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeaders returns a middleware that adds security headers.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Strict transport security (if using HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		// Responses are data only
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// APIVersion returns a middleware that adds API version header.
func APIVersion(version string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-API-Version", version)
			next.ServeHTTP(w, r)
		})
	}
}

// AllowContentTypes rejects write requests whose body is not one of the
// given media types. The calculator accepts JSON and plain form posts.
//
// Parameters:
//   - types: accepted media types (e.g., "application/json")
//
// Returns:
//   - func(http.Handler) http.Handler: the middleware function
func AllowContentTypes(types ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[strings.ToLower(t)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
				mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
				if _, ok := allowed[strings.ToLower(mediaType)]; err != nil || !ok {
					writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
						"Content-Type must be one of: "+strings.Join(types, ", "))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MaxBodySize limits the size of request bodies.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// timeoutBody is the JSON body sent when a handler overruns.
const timeoutBody = `{"success": false, "error": {"code": "TIMEOUT", "message": "Request timed out"}}`

// Timeout returns a middleware that enforces a request timeout.
// Handlers that overrun get a 503 with a JSON error body.
//
// The handler routes on its own chi route context, copied back only when it
// finishes in time. A handler still running after the timeout never touches
// the context outer middleware reads, which chi recycles once the request ends.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A handler that completes overwrites this with its own Content-Type
			w.Header().Set("Content-Type", "application/json")

			rctx := chi.RouteContext(r.Context())
			if rctx == nil {
				http.TimeoutHandler(next, timeout, timeoutBody).ServeHTTP(w, r)
				return
			}

			inner := chi.NewRouteContext()
			inner.Routes = rctx.Routes
			inner.RoutePath = rctx.RoutePath
			inner.RouteMethod = rctx.RouteMethod
			inner.RoutePatterns = append([]string(nil), rctx.RoutePatterns...)
			inner.URLParams.Keys = append([]string(nil), rctx.URLParams.Keys...)
			inner.URLParams.Values = append([]string(nil), rctx.URLParams.Values...)

			var (
				mu       sync.Mutex
				finished bool
			)
			routed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r)

				mu.Lock()
				defer mu.Unlock()
				if !finished {
					rctx.RoutePatterns = inner.RoutePatterns
					rctx.URLParams = inner.URLParams
				}
			})

			ctx := context.WithValue(r.Context(), chi.RouteCtxKey, inner)
			http.TimeoutHandler(routed, timeout, timeoutBody).ServeHTTP(w, r.WithContext(ctx))

			mu.Lock()
			finished = true
			mu.Unlock()
		})
	}
}

// ClientIP returns the address of the connection peer. Forwarding headers
// are ignored; use TrustedClientIP behind a reverse proxy.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// TrustedClientIP returns a client key function that reads forwarding
// headers only from the given proxies.
//
// When the peer is trusted, X-Forwarded-For is walked from the right and the
// first address that is not itself a trusted proxy is the client. Entries
// left of it were written by the client and are never used.
//
// Parameters:
//   - trusted: networks of reverse proxies in front of the server
//
// Returns:
//   - func(*http.Request) string: the client key function
func TrustedClientIP(trusted []netip.Prefix) func(*http.Request) string {
	if len(trusted) == 0 {
		return ClientIP
	}

	isTrusted := func(s string) bool {
		addr, err := netip.ParseAddr(strings.TrimSpace(s))
		if err != nil {
			return false
		}
		addr = addr.Unmap()
		for _, p := range trusted {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	return func(r *http.Request) string {
		peer := ClientIP(r)
		if !isTrusted(peer) {
			return peer
		}

		if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
			hops := strings.Split(strings.Join(xff, ","), ",")
			for i := len(hops) - 1; i >= 0; i-- {
				hop := strings.TrimSpace(hops[i])
				if hop == "" {
					continue
				}
				if !isTrusted(hop) {
					return hop
				}
			}
		}
		if xrip := strings.TrimSpace(r.Header.Get("X-Real-IP")); xrip != "" {
			return xrip
		}
		return peer
	}
}

// ParseTrustedProxies parses CIDR blocks or single addresses.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, err
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success": false, "error": {"code": "` + code + `", "message": "` + message + `"}}`))
}
