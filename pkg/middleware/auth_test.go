package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	if raw == "goodtoken" {
		return &fakeToken{data: map[string]interface{}{"sub": "owner", "role": "admin"}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func serveAdmin(t *testing.T, ver Verifier, header string) *httptest.ResponseRecorder {
	t.Helper()
	g := gin.New()
	g.GET("/", AdminOnly(ver), func(c *gin.Context) {
		claims, _ := c.Get(ClaimsKey)
		c.JSON(http.StatusOK, gin.H{"claims": claims})
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func TestAdminOnly_Rejections(t *testing.T) {
	for _, header := range []string{"", "BadHeader", "Basic Zm9vOmJhcg==", "Bearer ", "Bearer badtoken"} {
		rw := serveAdmin(t, &fakeVerifier{}, header)
		require.Equal(t, http.StatusUnauthorized, rw.Code, header)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
		require.NotEmpty(t, body["message"])
	}
}

func TestAdminOnly_RejectionMessages(t *testing.T) {
	cases := map[string]string{
		"":                "Missing Authorization header",
		"Token abc":       "Invalid Authorization header",
		"Bearer badtoken": "Invalid token",
	}
	for header, want := range cases {
		rw := serveAdmin(t, &fakeVerifier{}, header)
		require.Equal(t, http.StatusUnauthorized, rw.Code, header)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
		require.Equal(t, want, body["message"], header)
	}
}

func TestAdminOnly_ValidToken(t *testing.T) {
	rw := serveAdmin(t, &fakeVerifier{}, "Bearer goodtoken")
	require.Equal(t, http.StatusOK, rw.Code)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	require.Equal(t, "owner", body["claims"]["sub"])
}

func TestAdminOnly_NilVerifierIsOpen(t *testing.T) {
	rw := serveAdmin(t, nil, "")
	require.Equal(t, http.StatusOK, rw.Code)
}
