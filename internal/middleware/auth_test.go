package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(keys ...string) *gin.Engine {
	router := gin.New()
	router.Use(APIKeyAuth(keys))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestAPIKeyAuth_ValidHeader(t *testing.T) {
	router := authRouter("key-1", "key-2")

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-API-Key", "key-2")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAPIKeyAuth_ValidQueryParam(t *testing.T) {
	router := authRouter("key-1")

	req := httptest.NewRequest("GET", "/test?api_key=key-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAPIKeyAuth_Missing(t *testing.T) {
	router := authRouter("key-1")

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAPIKeyAuth_Invalid(t *testing.T) {
	router := authRouter("key-1")

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-API-Key", "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAdminKeyAuth_WrongKeyIsForbidden(t *testing.T) {
	router := gin.New()
	router.Use(AdminKeyAuth([]string{"admin-key"}))
	router.GET("/admin", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("X-API-Key", "not-admin")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}
