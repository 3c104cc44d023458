package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler(logger.NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	router.GET("/error", func(c *gin.Context) {
		_ = c.Error(errors.New("database unavailable"))
	})
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "fine")
	})

	expected := `{"status":"error","message":"An internal server error occurred."}`
	for _, path := range []string{"/panic", "/error"} {
		rr := httptest.NewRecorder()
		req, err := http.NewRequest("GET", path, nil)
		if err != nil {
			t.Fatal(err)
		}
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusInternalServerError {
			t.Errorf("%s returned wrong status code: got %v want %v", path, status, http.StatusInternalServerError)
		}
		if rr.Body.String() != expected {
			t.Errorf("%s returned unexpected body: got %v want %v", path, rr.Body.String(), expected)
		}
	}

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ok", nil)
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "fine" {
		t.Errorf("healthy handler was altered: %d %q", rr.Code, rr.Body.String())
	}
}
