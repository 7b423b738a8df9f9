package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("with default origin", func(t *testing.T) {
		called = false
		handler := CORSMiddleware("")(next)

		req := httptest.NewRequest(http.MethodGet, "/api/composition.get", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Disposition", w.Header().Get("Access-Control-Expose-Headers"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("with custom origin", func(t *testing.T) {
		handler := CORSMiddleware("https://console.example.com")(next)

		req := httptest.NewRequest(http.MethodPost, "/api/sections.add", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("with OPTIONS request", func(t *testing.T) {
		called = false
		handler := CORSMiddleware("")(next)

		req := httptest.NewRequest(http.MethodOptions, "/api/composition.render", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, called, "preflight must not reach the handler")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
