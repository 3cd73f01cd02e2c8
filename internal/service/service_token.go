package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

// jwtTokenService is the HS256 JWT implementation of [TokenService].
type jwtTokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a [TokenService] from the token settings of cfg.
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &jwtTokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Issue signs a token whose subject is user.ID and whose isAdm claim mirrors
// user.IsAdm.
func (s *jwtTokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.ID, user.IsAdm, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*jwtTokenService.Issue").Str("user_id", user.ID).Msg("error issuing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify validates the signature, algorithm, issuer, expiry and subject of
// token. Any failure is normalised to [ErrInvalidToken].
func (s *jwtTokenService) Verify(ctx context.Context, token string) (models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*jwtTokenService.Verify").Msg("token rejected")
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}
