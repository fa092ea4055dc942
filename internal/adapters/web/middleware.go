// internal/adapters/web/middleware.go
package web

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/logx"
	"sentimeter/internal/platform/rate"
)

// HeaderRequestID is echoed on every response.
const HeaderRequestID = "X-Request-ID"

const ctxRequestID = "request_id"

// TooManyRequestsMessage is shown to clients over their request budget.
const TooManyRequestsMessage = "Too many requests. Wait a moment and try again."

// requestID keeps a caller-supplied UUID or mints a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// requestLogger logs one line per request; health checks at debug.
func requestLogger(logger logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", getRequestID(c),
		}
		switch {
		case c.Request.URL.Path == "/healthz" || c.Request.URL.Path == "/metrics":
			logger.Debug("http request", kv...)
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Warn("http request", kv...)
		default:
			logger.Info("http request", kv...)
		}
	}
}

// recovery turns a panic into a 500 with a JSON body and a logged error.
func recovery(logger logx.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Err(errors.New(fmt.Sprint(recovered)), "path", c.Request.URL.Path, "request_id", getRequestID(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			Error:     errorBody{Kind: "internal", Message: "internal server error"},
			RequestID: getRequestID(c),
		})
	})
}

// bodyLimit caps request bodies.
func bodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}

// clientRateLimit rejects clients that exceed their per-IP budget with a 429.
// The HTML form gets the page back with a notice; the API gets a JSON error.
func (s *Server) clientRateLimit(limiter *rate.KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if limiter.Allow(key) {
			c.Next()
			return
		}

		wait := limiter.RetryAfter(key)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		s.logger.Debug("client rate limited", "client", key, "path", c.Request.URL.Path, "retry_after", wait.String())

		if c.FullPath() == "/" {
			page := newPageView(s.cfg.Classifier, s.cfg.MaxRunes, getRequestID(c))
			page.Text = c.PostForm("text")
			page.Error = TooManyRequestsMessage
			c.HTML(http.StatusTooManyRequests, "index.html", page)
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
			Error:     errorBody{Kind: "rate_limit", Message: TooManyRequestsMessage},
			RequestID: getRequestID(c),
		})
	}
}
