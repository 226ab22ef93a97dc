package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns the default CORS configuration. AllowOrigins
// is empty, so cross-origin requests are rejected until origins are
// explicitly configured.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS returns a CORS middleware using the default configuration.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// corsHeaders holds the header values computed once from a CORSConfig so
// the per-request path only does origin matching.
type corsHeaders struct {
	allowMethods  string
	allowHeaders  string
	exposeHeaders string
	maxAge        string
}

func newCORSHeaders(cfg CORSConfig) corsHeaders {
	h := corsHeaders{
		allowMethods: strings.Join(cfg.AllowMethods, ", "),
		allowHeaders: strings.Join(cfg.AllowHeaders, ", "),
	}
	if len(cfg.ExposeHeaders) > 0 {
		h.exposeHeaders = strings.Join(cfg.ExposeHeaders, ", ")
	}
	if cfg.MaxAge > 0 {
		h.maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}
	return h
}

func (h corsHeaders) apply(w http.Header) {
	w.Set("Access-Control-Allow-Headers", h.allowHeaders)
	w.Set("Access-Control-Allow-Methods", h.allowMethods)
	if h.exposeHeaders != "" {
		w.Set("Access-Control-Expose-Headers", h.exposeHeaders)
	}
	if h.maxAge != "" {
		w.Set("Access-Control-Max-Age", h.maxAge)
	}
}

// CORSWithConfig returns a CORS middleware with the given configuration.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	headers := newCORSHeaders(cfg)

	wildcard := false
	allowed := make(map[string]bool, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}

	// resolve returns the Access-Control-Allow-Origin value for a request
	// origin, or "" when the request gets no CORS headers at all.
	resolve := func(origin string) string {
		if wildcard {
			return "*"
		}
		if allowed[origin] {
			return origin
		}
		return ""
	}

	return func(c *gin.Context) {
		if len(cfg.AllowOrigins) == 0 {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		grant := resolve(c.Request.Header.Get("Origin"))
		if grant != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", grant)
			// browsers reject credentials combined with a "*" origin
			if cfg.AllowCredentials && grant != "*" {
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			headers.apply(c.Writer.Header())
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestID tags every request with an X-Request-ID, reusing the caller's
// ID when one is supplied.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = newRequestID()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

func newRequestID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// timestamp fallback if crypto/rand is unavailable
		return time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b[:])
}

// Secure sets baseline security headers on every response.
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
