// cmd/api/middleware.go

package main

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/imadgeboyega/kiekky-matching/internal/common/utils"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var startTime = time.Now()

// healthCheck reports process uptime and the reachability of the stores
func healthCheck(db *sqlx.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"postgres": "ok"}
		status, code := "healthy", http.StatusOK

		if err := db.PingContext(r.Context()); err != nil {
			checks["postgres"] = err.Error()
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Ping(r.Context()).Err(); err != nil {
				// degraded: the service falls back to uncached scoring
				checks["redis"] = err.Error()
				if code == http.StatusOK {
					status = "degraded"
				}
			}
		}

		utils.RespondWithJSON(w, code, map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    time.Since(startTime).String(),
			"checks":    checks,
		})
	}
}

// loggingMiddleware logs all requests
func loggingMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
