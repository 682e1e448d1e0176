package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shcya/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars!!"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:   testSecret,
		Issuer:   "shcya-identity",
		Audience: "shcya-backoffice",
	})
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "staff-42",
			Issuer:    "shcya-identity",
			Audience:  jwt.ClaimStrings{"shcya-backoffice"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
		Email: "ops@shcya.in",
		Roles: []string{RoleStaff},
	}
}

func sign(t *testing.T, method jwt.SigningMethod, claims Claims, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	claims, err := svc.ValidateAccessToken(sign(t, jwt.SigningMethodHS256, validClaims(), []byte(testSecret)))

	require.NoError(t, err)
	assert.Equal(t, "staff-42", claims.Subject)
	assert.Equal(t, "ops@shcya.in", claims.Email)
	assert.True(t, claims.HasRole(RoleStaff))
	assert.False(t, claims.HasRole(RoleAdmin))
	assert.True(t, claims.GetRemainingTTL() > 14*time.Minute)
}

func TestJWTService_ValidateAccessToken_Rejections(t *testing.T) {
	svc := newTestJWTService()
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name    string
		mutate  func(*Claims)
		method  jwt.SigningMethod
		key     any
		wantErr error
	}{
		{"wrong secret", nil, jwt.SigningMethodHS256, []byte("another-secret-that-is-long-enough"), ErrInvalidToken},
		{"hs512 not accepted", nil, jwt.SigningMethodHS512, []byte(testSecret), ErrInvalidToken},
		{"expired", func(c *Claims) {
			c.IssuedAt = jwt.NewNumericDate(past)
			c.ExpiresAt = jwt.NewNumericDate(past.Add(time.Minute))
		}, jwt.SigningMethodHS256, []byte(testSecret), ErrExpiredToken},
		{"no expiry", func(c *Claims) { c.ExpiresAt = nil }, jwt.SigningMethodHS256, []byte(testSecret), ErrInvalidToken},
		{"not yet valid", func(c *Claims) {
			c.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
		}, jwt.SigningMethodHS256, []byte(testSecret), ErrTokenNotYetValid},
		{"wrong issuer", func(c *Claims) { c.Issuer = "someone-else" }, jwt.SigningMethodHS256, []byte(testSecret), ErrInvalidClaims},
		{"wrong audience", func(c *Claims) { c.Audience = jwt.ClaimStrings{"billing"} }, jwt.SigningMethodHS256, []byte(testSecret), ErrInvalidClaims},
		{"missing subject", func(c *Claims) { c.Subject = "" }, jwt.SigningMethodHS256, []byte(testSecret), ErrInvalidClaims},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			if tt.mutate != nil {
				tt.mutate(&claims)
			}
			_, err := svc.ValidateAccessToken(sign(t, tt.method, claims, tt.key))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})
}

func TestJWTService_LeewayAndOptionalChecks(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: testSecret, Leeway: time.Minute})
	claims := validClaims()
	claims.Issuer = "anyone"
	claims.Audience = nil
	claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-30 * time.Second))

	_, err := svc.ValidateAccessToken(sign(t, jwt.SigningMethodHS256, claims, []byte(testSecret)))

	assert.NoError(t, err, "expiry within leeway and no issuer or audience configured")
}

func TestClaims_HasAnyRole(t *testing.T) {
	c := &Claims{Roles: []string{RoleAdmin}}
	assert.True(t, c.HasAnyRole(RoleStaff, RoleAdmin))
	assert.False(t, (&Claims{}).HasAnyRole(RoleStaff, RoleAdmin))
	assert.Zero(t, (&Claims{}).GetRemainingTTL())
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer   abc", "abc", true},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ExtractBearer(tt.header)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
