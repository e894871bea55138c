package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skypath_backend/internal/model"
	"skypath_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(secret), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	r.GET("/admin", AuthMiddleware(secret), Admin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, role model.UserRole, key string) string {
	t.Helper()
	user := &model.User{Email: "m@example.com", Role: role}
	user.ID = "user-1"
	tok, err := util.GenerateJWT(user, key, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body util.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestAuthMiddleware(t *testing.T) {
	r := setupRouter()
	valid := token(t, model.Student, secret)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantErr  string
	}{
		{"missing header", "", http.StatusUnauthorized, msgTokenRequired},
		{"no scheme", valid, http.StatusUnauthorized, msgTokenRequired},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, msgTokenRequired},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, msgTokenRequired},
		{"garbage", "Bearer not-a-jwt", http.StatusForbidden, msgInvalidToken},
		{"wrong secret", "Bearer " + token(t, model.Student, "other"), http.StatusForbidden, msgInvalidToken},
		{"valid", "Bearer " + valid, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/protected", tt.header)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorOf(t, w))
			}
		})
	}
}

func TestAdmin(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		role     model.UserRole
		wantCode int
	}{
		{model.Student, http.StatusForbidden},
		{model.Teacher, http.StatusForbidden},
		{model.Admin, http.StatusNoContent},
		{model.Master, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			w := do(r, "/admin", "Bearer "+token(t, tt.role, secret))
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusForbidden {
				assert.Equal(t, msgAdminRequired, errorOf(t, w))
			}
		})
	}

	w := do(r, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_WithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", Admin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
