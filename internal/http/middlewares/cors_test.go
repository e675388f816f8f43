package middlewares_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/udeepa-des/StudyCountDown-backend/internal/http/middlewares"
)

func corsRouter(allowed []string) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.CORSMiddleware(allowed))
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	r := corsRouter([]string{"http://localhost:3000", "https://studycountdown.app"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://studycountdown.app")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://studycountdown.app" {
		t.Fatalf("allow-origin: got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow-credentials: got %q", got)
	}
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("vary: got %q", got)
	}
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	allowed := []string{"http://localhost:3000"}
	r := corsRouter(allowed)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusForbidden, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("rejected response must not set allow-origin, got %q", got)
	}

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				AllowedOrigins []string `json:"allowedOrigins"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
	}
	if resp.Error.Code != "cors_rejected" {
		t.Fatalf("expected cors_rejected, got %q", resp.Error.Code)
	}
	if !reflect.DeepEqual(resp.Error.Details.AllowedOrigins, allowed) {
		t.Fatalf("allow-list not echoed: got %v want %v", resp.Error.Details.AllowedOrigins, allowed)
	}
}

func TestCORSPassesRequestsWithoutOrigin(t *testing.T) {
	r := corsRouter([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("origin-less requests should not get CORS headers, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := corsRouter([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusNoContent, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("preflight must advertise allowed methods")
	}

	denied := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	denied.Header.Set("Origin", "https://evil.example")

	wd := httptest.NewRecorder()
	r.ServeHTTP(wd, denied)

	if wd.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want %d, body=%s", wd.Code, http.StatusForbidden, wd.Body.String())
	}
}
