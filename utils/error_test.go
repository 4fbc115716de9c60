package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestAppErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("event_not_found", "Event not found"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected NotFound to match ErrNotFound")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("NotFound must not match ErrInvalidArgument")
	}
}

func TestStatusCode(t *testing.T) {
	cases := map[error]int{
		NotFound("x", "x"):                 http.StatusNotFound,
		InvalidArgument("x", "x", nil):     http.StatusBadRequest,
		ExternalUnavailable("x", "x", nil): http.StatusBadGateway,
		errors.New("boom"):                 http.StatusInternalServerError,
		&AppError{Kind: KindInternal}:      http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := StatusCode(err); got != want {
			t.Errorf("StatusCode(%v) = %d, want %d", err, got, want)
		}
	}
}

func TestJSONErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	JSONError(c, zap.NewNop(), errors.New("mongo: connection refused on 10.0.0.3"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "Internal Server Error" || body.Reason != "internal" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
