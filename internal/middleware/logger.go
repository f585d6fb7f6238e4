package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minifacebook/internal/pkg/response"
)

// Recovery turns a panic into the uniform 500 body. The panic value and
// stack go to the log only.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("panic recovered",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(CtxRequestID)),
					zap.String("panic", fmt.Sprintf("%v", recovered)),
					zap.ByteString("stack", debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"code":    "INTERNAL_SERVER_ERROR",
					"error":   "Internal server error",
					"message": "Something went wrong, please try again later",
				})
			}
		}()

		c.Next()
	}
}

// RequestLogger writes one line per request; 5xx and handler errors
// attached with c.Error are logged at error level.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("client_ip", c.ClientIP()),
			zap.Int64("user_id", c.GetInt64(CtxUserID)),
			zap.String("request_id", c.GetString(CtxRequestID)),
			zap.Duration("latency", time.Since(start)),
		}

		if len(c.Errors) > 0 {
			log.Error("request_error", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request_error", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

// InternalError logs err against the request and answers with a generic 500.
func InternalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
