package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// GinRequestIDMiddleware assegna un ID a ogni richiesta e lo propaga
// nell'header X-Request-ID e nel contesto
func GinRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Request = c.Request.WithContext(SetRequestID(c.Request.Context(), requestID))
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}

// GinCORSMiddleware abilita CORS per il frontend
func GinCORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// GinGzipMiddleware comprime le risposte. BestSpeed: i payload sono JSON
// piccoli, la latenza conta più del rapporto di compressione.
func GinGzipMiddleware() gin.HandlerFunc {
	return gzip.Gzip(gzip.BestSpeed)
}

// GinLoggerMiddleware logging delle richieste con ID e durata
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		requestID, _ := c.Get(string(RequestIDKey))
		log.Printf("[%v] %s %s -> %d (%v)",
			requestID, c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// GinRecoveryMiddleware intercetta i panic e risponde 500 senza far
// cadere il processo
func GinRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestID, _ := c.Get(string(RequestIDKey))
				log.Printf("✗ PANIC [%v] %s %s: %v\n%s",
					requestID, c.Request.Method, c.Request.URL.Path, r, debug.Stack())

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:     "Errore interno del server",
					Detail:    "Errore interno del server",
					Timestamp: time.Now().Format(time.RFC3339),
					RequestID: fmt.Sprintf("%v", requestID),
				})
			}
		}()
		c.Next()
	}
}

// GinRateLimitMiddleware limita le richieste per IP con un token bucket.
// I client oltre il limite ricevono 429 con Retry-After.
func GinRateLimitMiddleware(rps rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rps, burst)
			limiters[ip] = l
		}
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error:     "Troppe richieste, riprova tra poco",
				Detail:    "Troppe richieste, riprova tra poco",
				Timestamp: time.Now().Format(time.RFC3339),
			})
			return
		}
		c.Next()
	}
}
