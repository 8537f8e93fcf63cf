package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/go-user-backend/internal/apperr"
	"github.com/tbourn/go-user-backend/internal/validation"
)

// ValidateBody gates a route behind a declarative body schema.
//
// The request body is bound into a generic map (cached, so the handler can
// bind it again) and checked against the schema. All violations are
// collected; when any exist the request is rejected with a Validation
// failure whose message joins every violation, and the handler never runs.
//
// A body that is not valid JSON is itself a validation failure.
func ValidateBody(schema validation.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
			c.Error(apperr.Validation("invalid JSON body"))
			c.Abort()
			return
		}

		if vs := schema.Validate(payload); len(vs) > 0 {
			c.Error(apperr.Validation(validation.Join(vs)))
			c.Abort()
			return
		}

		c.Next()
	}
}
