package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/internal/service"
)

func protectedRouter(auth *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/refresh", JWT(auth), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestJWTRoleGate(t *testing.T) {
	auth := service.NewAuthService(nil, service.AuthConfig{Secret: "secret"})
	admin, _, err := auth.IssueToken("ops", models.RoleAdmin, time.Minute)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	viewer, _, err := auth.IssueToken("ops", "viewer", time.Minute)
	if err != nil {
		t.Fatalf("issue viewer token: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + admin, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + viewer, want: http.StatusForbidden},
		{name: "admin", header: "Bearer " + admin, want: http.StatusNoContent},
	}

	router := protectedRouter(auth)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(recorder, req)
			if recorder.Code != tc.want {
				t.Fatalf("unexpected status: got %d want %d", recorder.Code, tc.want)
			}
		})
	}
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	SetCacheHit(c, true)
	SetMeta(c, "source", "file:course.csv")

	meta := ExtractMeta(c)
	if meta[cacheHitKey] != true {
		t.Fatalf("expected cache hit flag, got %v", meta[cacheHitKey])
	}
	if meta["source"] != "file:course.csv" {
		t.Fatalf("unexpected source meta: %v", meta["source"])
	}
}
