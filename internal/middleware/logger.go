package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"bookinghub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags the request with an id, logs its outcome and recovers from panics.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Header(HeaderRequestID, rid)

		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				requestEvent(c, log.Error(), start).
					Err(err).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.Abort(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error")
				return
			}

			status := c.Writer.Status()
			var ev *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError || len(c.Errors) > 0:
				ev = log.Error()
			case status >= http.StatusBadRequest:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			if len(c.Errors) > 0 {
				ev = ev.Str("errors", c.Errors.String())
			}
			requestEvent(c, ev, start).Msg("request")
		}()

		c.Next()
	}
}

func requestEvent(c *gin.Context, ev *zerolog.Event, start time.Time) *zerolog.Event {
	return ev.
		Str("request_id", c.GetString("request_id")).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Str("client_ip", c.ClientIP()).
		Int64("user_id", c.GetInt64(ContextUserID)).
		Dur("latency", time.Since(start))
}
