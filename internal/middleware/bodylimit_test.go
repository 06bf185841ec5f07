package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newSizedRouter(maxBytes int64) *gin.Engine {
	router := gin.New()
	router.POST("/api/dataset", BodySizeLimit(maxBytes), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestBodySizeLimit(t *testing.T) {
	tests := []struct {
		name       string
		maxBytes   int64
		body       string
		wantStatus int
	}{
		{
			name:       "body within limit",
			maxBytes:   64,
			body:       `{"source_text":"hi"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "body at limit",
			maxBytes:   20,
			body:       strings.Repeat("x", 20),
			wantStatus: http.StatusOK,
		},
		{
			name:       "declared oversize rejected before read",
			maxBytes:   16,
			body:       strings.Repeat("x", 1000),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSizedRouter(tt.maxBytes)
			req := httptest.NewRequest(http.MethodPost, "/api/dataset", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
