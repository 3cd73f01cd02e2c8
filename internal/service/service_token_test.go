package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

func testTokenConfig() config.App {
	return config.App{
		TokenSignKey:  "test-secret",
		TokenIssuer:   "go-accounts-test",
		TokenDuration: 24 * time.Hour,
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService(testTokenConfig(), logger.Nop())

	tests := []struct {
		name string
		user models.User
	}{
		{name: "regular user", user: models.User{ID: "u-1"}},
		{name: "admin", user: models.User{ID: "u-2", IsAdm: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Issue(ctx, tt.user)
			require.NoError(t, err)
			require.NotEmpty(t, token.String())

			claims, err := svc.Verify(ctx, token.String())
			require.NoError(t, err)

			assert.Equal(t, tt.user.ID, claims.Subject)
			assert.Equal(t, tt.user.IsAdm, claims.IsAdm)
			assert.Equal(t, "go-accounts-test", claims.Issuer)
			assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
			assert.Equal(t, models.Actor{ID: tt.user.ID, IsAdm: tt.user.IsAdm}, claims.Actor())
		})
	}
}

func TestTokenService_IssueWithoutSubject(t *testing.T) {
	svc := NewTokenService(testTokenConfig(), logger.Nop())

	_, err := svc.Issue(context.Background(), models.User{})

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestTokenService_VerifyRejects(t *testing.T) {
	ctx := context.Background()
	cfg := testTokenConfig()
	svc := NewTokenService(cfg, logger.Nop())

	otherKey := cfg
	otherKey.TokenSignKey = "another-secret"
	foreignToken, err := NewTokenService(otherKey, logger.Nop()).Issue(ctx, models.User{ID: "u-1"})
	require.NoError(t, err)

	otherIssuer := cfg
	otherIssuer.TokenIssuer = "someone-else"
	foreignIssuer, err := NewTokenService(otherIssuer, logger.Nop()).Issue(ctx, models.User{ID: "u-1"})
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.TokenIssuer,
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredString, err := expired.SignedString([]byte(cfg.TokenSignKey))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.TokenIssuer,
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		IsAdm: true,
	})
	unsignedString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong key", token: foreignToken.String()},
		{name: "wrong issuer", token: foreignIssuer.String()},
		{name: "expired", token: expiredString},
		{name: "none algorithm", token: unsignedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
