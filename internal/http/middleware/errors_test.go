package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/go-user-backend/internal/apperr"
)

func errRouter(dev bool, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), ErrorHandler(dev))
	r.POST("/x", h)
	r.GET("/x", h)
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestErrorHandler_OperationalFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", apperr.NotFound("User not found"), http.StatusNotFound, "User not found"},
		{"validation", apperr.Validation("email is required"), http.StatusBadRequest, "email is required"},
		{"conflict", apperr.Conflict("Email already exists"), http.StatusConflict, "Email already exists"},
		{"unauthorized", apperr.Unauthorized(""), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", apperr.Forbidden(""), http.StatusForbidden, "Forbidden"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			captureLogger(t)
			r := errRouter(false, func(c *gin.Context) {
				c.Error(tc.err)
				c.Abort()
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			body := decodeEnvelope(t, w)
			if body["success"] != false {
				t.Fatalf("success = %v, want false", body["success"])
			}
			if body["message"] != tc.wantMsg {
				t.Fatalf("message = %q, want %q", body["message"], tc.wantMsg)
			}
		})
	}
}

func TestErrorHandler_SameFailureTranslatesIdentically(t *testing.T) {
	captureLogger(t)

	// One failure value reused across requests: translation must be a pure
	// function of the failure, with no state carried between invocations.
	shared := apperr.Conflict("Email already exists")
	r := errRouter(false, func(c *gin.Context) {
		c.Error(shared)
		c.Abort()
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/x", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w1.Code != http.StatusConflict || w2.Code != w1.Code {
		t.Fatalf("statuses = %d, %d, want both 409", w1.Code, w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Fatalf("bodies differ:\n%s\n%s", w1.Body.String(), w2.Body.String())
	}
}

func TestErrorHandler_UnknownFailureDevAndProd(t *testing.T) {
	boom := errors.New("pipe burst")

	captureLogger(t)
	dev := errRouter(true, func(c *gin.Context) {
		c.Error(boom)
		c.Abort()
	})
	w := httptest.NewRecorder()
	dev.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("dev status = %d, want 500", w.Code)
	}
	if got := decodeEnvelope(t, w)["message"]; got != "pipe burst" {
		t.Fatalf("dev message = %q, want underlying error", got)
	}

	captureLogger(t)
	prod := errRouter(false, func(c *gin.Context) {
		c.Error(boom)
		c.Abort()
	})
	w2 := httptest.NewRecorder()
	prod.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/x", nil))
	if got := decodeEnvelope(t, w2)["message"]; got != "Something went wrong" {
		t.Fatalf("prod message = %q, want generic", got)
	}
	if strings.Contains(w2.Body.String(), "pipe burst") {
		t.Fatalf("underlying error leaked in production response")
	}
}

func TestErrorHandler_LogsStackForDefectsOnly(t *testing.T) {
	buf := captureLogger(t)
	defect := errRouter(false, func(c *gin.Context) {
		c.Error(errors.New("pipe burst"))
		c.Abort()
	})
	w := httptest.NewRecorder()
	defect.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if logged := buf.String(); !strings.Contains(logged, `"stack"`) || !strings.Contains(logged, "goroutine") {
		t.Fatalf("expected stack trace in defect log:\n%s", logged)
	}

	buf = captureLogger(t)
	operational := errRouter(false, func(c *gin.Context) {
		c.Error(apperr.NotFound("User not found"))
		c.Abort()
	})
	w = httptest.NewRecorder()
	operational.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if logged := buf.String(); strings.Contains(logged, `"stack"`) {
		t.Fatalf("operational failure log should not carry a stack:\n%s", logged)
	}
}

func TestErrorHandler_NoErrorNoWrite(t *testing.T) {
	captureLogger(t)
	r := errRouter(false, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "fine"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decodeEnvelope(t, w)["message"]; got != "fine" {
		t.Fatalf("handler response clobbered: %v", got)
	}
}

func TestErrorHandler_SkipsWhenAlreadyWritten(t *testing.T) {
	captureLogger(t)
	r := errRouter(false, func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"success": false, "message": "custom"})
		c.Error(errors.New("late failure"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", w.Code)
	}
	if got := decodeEnvelope(t, w)["message"]; got != "custom" {
		t.Fatalf("response overwritten: %v", got)
	}
}

func TestErrorHandler_LogsRedactedBody(t *testing.T) {
	buf := captureLogger(t)
	r := errRouter(false, func(c *gin.Context) {
		var payload map[string]any
		_ = c.ShouldBindBodyWith(&payload, binding.JSON)
		c.Error(apperr.Validation("name is required"))
		c.Abort()
	})

	body := `{"email":"a@b.co","password":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	logged := buf.String()
	if strings.Contains(logged, "hunter2") {
		t.Fatalf("password leaked into logs:\n%s", logged)
	}
	if !strings.Contains(logged, "a@b.co") {
		t.Fatalf("expected request body in failure log:\n%s", logged)
	}
	if !strings.Contains(logged, `POST`) || !strings.Contains(logged, "/x") {
		t.Fatalf("expected method and path in failure log:\n%s", logged)
	}
}
