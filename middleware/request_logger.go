package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	"POST":   "created",
	"PATCH":  "updated",
	"PUT":    "updated",
	"DELETE": "deleted",
}

// resourceFromPath returns the first path segment after /api, e.g.
// "checkout" for /api/checkout/sessions/:id/pay.
func resourceFromPath(path string) string {
	path = strings.TrimPrefix(path, "/api")
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

// RequestLogger writes one structured line per request. Mutating requests
// also record the action and the caller, when known.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}

		if verb, ok := methodToActionVerb[c.Request.Method]; ok {
			fields = append(fields,
				zap.String("resource", resourceFromPath(route)),
				zap.String("action", verb),
			)
			if p := PrincipalFromContext(c); p.Authenticated() {
				fields = append(fields, zap.String("user", p.UserID))
			}
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
