package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tournest/tournest/internal/config"
	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

// tokenService is the concrete implementation of TokenService: stateless
// issuance and verification of HMAC-SHA256 session tokens. It performs no
// store lookups — the "issued after the last password change" freshness
// check belongs to the middleware, which sees both the token and the
// account.
type tokenService struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey string

	// issuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match are rejected during parsing.
	issuer string

	// duration controls how long a newly issued token remains valid.
	// Fixed at process start.
	duration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a TokenService populated with the security
// parameters from cfg. Safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		logger:   logger,
	}
}

// Issue signs {sub: userID, iat: now, exp: now+duration, iss} and returns
// the token with its compact serialized form.
func (t *tokenService) Issue(ctx context.Context, userID uuid.UUID) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.issuer, userID, t.duration, t.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify validates the signature, expiry, and issuer of a raw token
// string. Any failure — structural, cryptographic, or temporal — is
// normalised to ErrTokenInvalid so that callers cannot distinguish the
// cause.
func (t *tokenService) Verify(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, t.signKey, t.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token verification failed")
		return models.Token{}, ErrTokenInvalid
	}

	return token, nil
}
