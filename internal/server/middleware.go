package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rshade/ecotrack/internal/logging"
)

// RequestIDHeader carries the per-request trace id in both directions.
const RequestIDHeader = "X-Request-ID"

// requestContext attaches the logger and a trace id to the request context.
// A client-supplied X-Request-ID is reused as the trace id.
func (s *Server) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(RequestIDHeader)
		if traceID == "" {
			traceID = logging.NewTraceID()
		}
		ctx := logging.ContextWithTraceID(c.Request.Context(), traceID)
		ctx = s.logger.WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, traceID)
		c.Next()
	}
}

// observe logs and counts each request once it completes.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		s.metrics.requestInFlight.Inc()
		defer s.metrics.requestInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()
		s.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)

		log := logging.FromContext(c.Request.Context())
		event := log.Info()
		if status >= 500 {
			event = log.Error()
		}
		event.Ctx(c.Request.Context()).
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Int64("duration_ms", elapsed.Milliseconds()).
			Msg("request handled")
	}
}
