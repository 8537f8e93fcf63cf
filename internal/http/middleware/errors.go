package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-user-backend/internal/apperr"
)

// passwordRE masks password values in logged request bodies. Matches the
// JSON field regardless of spacing, e.g. `"password": "secret"`.
var passwordRE = regexp.MustCompile(`("password"\s*:\s*)"(?:[^"\\]|\\.)*"`)

// maxBodyLogLength caps the number of bytes of a request body logged by the
// error translator.
const maxBodyLogLength = 4096

// ErrorHandler translates failures recorded on the Gin context into the
// standard failure envelope.
//
// Handlers and middleware report failures with c.Error(err); this middleware
// runs after them, takes the last recorded error, logs it together with the
// request method, path and (redacted) body, and writes exactly one response:
//
//   - operational failures carry their own status and message;
//   - anything else is an unexpected defect: status 500, with the underlying
//     message exposed only in development mode.
//
// It never writes when a response has already been produced, so it composes
// with Recovery() and with handlers that respond directly.
func ErrorHandler(dev bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		err := last.Err

		e, ok := apperr.From(err)
		operational := ok && e.Operational()

		ev := LoggerFrom(c).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("body", redactedBody(c))
		if !operational {
			// Defects get a stack; operational failures are expected
			// outcomes and would only add noise.
			ev = ev.Bytes("stack", debug.Stack())
		}
		ev.Msg("request failed")

		if c.Writer.Written() {
			return
		}

		status := http.StatusInternalServerError
		msg := "Something went wrong"

		if operational {
			status = e.Status()
			msg = e.Message
		} else if dev {
			msg = err.Error()
		}

		c.JSON(status, gin.H{
			"success": false,
			"message": msg,
		})
	}
}

// redactedBody returns the cached request body with password values masked,
// truncated for logging. Bodies are cached by ShouldBindBodyWith; requests
// that never bound a body log an empty string.
func redactedBody(c *gin.Context) string {
	v, ok := c.Get(gin.BodyBytesKey)
	if !ok {
		return ""
	}
	b, ok := v.([]byte)
	if !ok || len(b) == 0 {
		return ""
	}
	s := passwordRE.ReplaceAllString(string(b), `$1"***"`)
	return truncate(s, maxBodyLogLength)
}
