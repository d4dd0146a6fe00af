package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID_AssignsAndPropagates(t *testing.T) {
	g := gin.New()
	g.Use(RequestID())
	g.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rw.Header().Get(RequestIDHeader))
	require.Equal(t, rw.Header().Get(RequestIDHeader), rw.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, "abc-123", rw.Header().Get(RequestIDHeader))
}

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := gin.New()
	g.Use(RequestID(), RequestLogger(zap.New(core)))
	g.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	g.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	g.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, p := range []string{"/ok", "/missing", "/boom"} {
		g.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.Equal(t, "/boom", entries[2].ContextMap()["path"])
}

func TestCORS_Preflight(t *testing.T) {
	g := gin.New()
	g.Use(CORS(), Preflight())
	g.POST("/api/contact", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://site.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, "*", rw.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rw.Header().Get("Access-Control-Allow-Credentials"))
	require.Contains(t, rw.Header().Get("Access-Control-Allow-Methods"), "POST")
	require.Empty(t, rw.Body.String())
}

func TestPreflight_SameOriginFallsThroughCORS(t *testing.T) {
	// httptest requests target example.com, so this Origin is not cross-site
	// and the CORS handler leaves the request to Preflight.
	g := gin.New()
	g.Use(CORS(), Preflight())
	g.POST("/api/contact", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Empty(t, rw.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, rw.Body.String())
}

func TestPreflight_AnswersWithoutOrigin(t *testing.T) {
	g := gin.New()
	g.Use(CORS(), Preflight())
	g.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodOptions, "/api/health", nil))
	require.Equal(t, http.StatusOK, rw.Code)
	require.Empty(t, rw.Body.String())
}
