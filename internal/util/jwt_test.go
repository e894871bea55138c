package util

import (
	"testing"
	"time"

	"skypath_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes"

func testUser(role model.UserRole) *model.User {
	u := &model.User{Email: "student@example.com", Role: role}
	u.ID = "7d0c2f38-5b8e-4f4b-9a55-2a3c1f0e9b11"
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	tests := []struct {
		name string
		role model.UserRole
	}{
		{"student", model.Student},
		{"teacher", model.Teacher},
		{"admin", model.Admin},
		{"master", model.Master},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := testUser(tt.role)
			token, err := GenerateJWT(user, testSecret, time.Hour)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := ParseJWT(token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, user.Email, claims.Email)
			assert.Equal(t, tt.role, claims.Role)
		})
	}
}

func TestGenerateJWT_DefaultTTL(t *testing.T) {
	token, err := GenerateJWT(testUser(model.Student), testSecret, 0)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, DefaultTokenTTL, ttl)
}

func TestParseJWT_Invalid(t *testing.T) {
	valid, err := GenerateJWT(testUser(model.Student), testSecret, time.Hour)
	require.NoError(t, err)

	// GenerateJWT 不会签发过期令牌，这里手工构造
	expiredClaims := &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{UserID: "u1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "x@example.com"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "another_secret_that_is_long_enough_000"},
		{"expired", expired, testSecret},
		{"malformed", "not.a.jwt", testSecret},
		{"empty", "", testSecret},
		{"alg none", noneAlg, testSecret},
		{"unexpected hmac variant", hs512, testSecret},
		{"missing user id", noSubject, testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseJWT(tt.token, tt.secret)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
