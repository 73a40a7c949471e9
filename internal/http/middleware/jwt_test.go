package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

type users map[string]model.User

func (u users) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	user, ok := u[username]
	if !ok {
		return model.User{}, assert.AnError
	}
	return user, nil
}

func jwtRouter(lookup UserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTMiddleware("secret", lookup), func(c *gin.Context) {
		u, ok := GetCurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, u.Username)
	})
	return r
}

func call(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	r := jwtRouter(users{
		"admin": {Username: "admin", IsActive: true},
		"gone":  {Username: "gone", IsActive: false},
	})

	token, err := GenerateJWT("admin", "secret", time.Minute)
	require.NoError(t, err)
	w := call(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())

	w = call(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, w.Body.String())

	w = call(r, "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other, err := GenerateJWT("admin", "other-secret", time.Minute)
	require.NoError(t, err)
	w = call(r, "Bearer "+other)
	assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, w.Body.String())

	expired, err := GenerateJWT("admin", "secret", -time.Minute)
	require.NoError(t, err)
	w = call(r, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	inactive, err := GenerateJWT("gone", "secret", time.Minute)
	require.NoError(t, err)
	w = call(r, "Bearer "+inactive)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Inactive user"}`, w.Body.String())
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("admin1234")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "admin1234"))
	assert.False(t, CheckPassword(hash, "admin12345"))
}
