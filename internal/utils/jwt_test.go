package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "test-issuer"
	testSignKey = "secret-key"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "user-1", true, time.Hour, testSignKey)
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, token.SignedString, token.String())
	assert.Equal(t, "user-1", token.Claims.Subject)
	assert.Equal(t, testIssuer, token.Claims.Issuer)
	assert.True(t, token.Claims.IsAdm)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Claims.ExpiresAt.Time, 2*time.Second)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		duration time.Duration
		key      string
	}{
		{"empty subject", "", time.Hour, "key"},
		{"zero duration", "user-1", 0, "key"},
		{"negative duration", "user-1", -time.Hour, "key"},
		{"empty key", "user-1", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(testIssuer, tt.subject, false, tt.duration, tt.key)
			assert.ErrorIs(t, err, ErrInvalidJWTParams)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "user-42", false, time.Hour, testSignKey)
	require.NoError(t, err)

	claims, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, "user-42", claims.Subject)
	assert.False(t, claims.IsAdm)
	assert.Equal(t, "user-42", claims.Actor().ID)
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	valid, err := GenerateJWTToken(testIssuer, "user-1", false, time.Hour, testSignKey)
	require.NoError(t, err)

	expired := signClaims(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"iss": testIssuer,
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, testSignKey)

	noExpiry := signClaims(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"iss": testIssuer,
	}, testSignKey)

	noSubject := signClaims(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSignKey)

	hs512 := signClaims(t, jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "user-1",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSignKey)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"malformed", "not.a.token", testSignKey, testIssuer},
		{"random string", "randomstring", testSignKey, testIssuer},
		{"wrong key", valid.SignedString, "other-key", testIssuer},
		{"wrong issuer", valid.SignedString, testSignKey, "someone-else"},
		{"expired", expired, testSignKey, testIssuer},
		{"no expiry", noExpiry, testSignKey, testIssuer},
		{"no subject", noSubject, testSignKey, testIssuer},
		{"unexpected algorithm", hs512, testSignKey, testIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_NoneAlgorithmRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":   "user-1",
		"isAdm": true,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(unsigned, testSignKey, "")
	assert.Error(t, err)
}

func signClaims(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, key string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}
