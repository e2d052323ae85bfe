package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	helper "github.com/ishanbagra18/videotube-using-go/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(authRequired bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	mw := Authentication()
	if !authRequired {
		mw = OptionalAuthentication()
	}

	router.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return router
}

func issueAccessToken(t *testing.T, uid string) string {
	token, _, err := helper.GenerateAllTokens("a@b.com", "alice", "Alice A", uid)
	require.NoError(t, err)
	return token
}

func TestAuthenticationRejectsMissingToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "mw-test-secret")
	router := setupRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthenticationRejectsMalformedHeader(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "mw-test-secret")
	router := setupRouter(true)

	for _, header := range []string{"Bearer", "Token abc", "abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthenticationRejectsInvalidToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "mw-test-secret")
	router := setupRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.value")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationAcceptsBearerToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "mw-test-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "mw-refresh-secret")
	router := setupRouter(true)

	token := issueAccessToken(t, "user-42")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-42"`)
}

func TestAuthenticationAcceptsCookie(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "mw-test-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "mw-refresh-secret")
	router := setupRouter(true)

	token := issueAccessToken(t, "user-42")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthenticationNeverAborts(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "mw-test-secret")
	router := setupRouter(false)

	// no token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)

	// invalid token is ignored too
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthenticationSetsUserID(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "mw-test-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "mw-refresh-secret")
	router := setupRouter(false)

	token := issueAccessToken(t, "user-7")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-7"`)
}
