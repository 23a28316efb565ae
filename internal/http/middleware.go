package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RequestLogger logs one line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Warn("request failed")
		default:
			entry.Info("request")
		}
	}
}

// Recovery turns a panic into the standard JSON error envelope.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.WithField("path", c.Request.URL.Path).Errorf("panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprint(recovered),
		})
	})
}

func rateLimitMiddleware(limit int64, period time.Duration, logger *logrus.Logger) gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: period,
		Limit:  limit,
	})
	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			respondError(c, http.StatusTooManyRequests, "Too many requests, please slow down")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.Warnf("rate limiter: %v", err)
			respondError(c, http.StatusInternalServerError, err.Error())
		}),
	)
}

// requireSession stops the chain with "Not logged in" when the client has no
// session. The status stays 200; clients branch on the status field.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := h.sessions.Username(c); !ok {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		c.Next()
	}
}
